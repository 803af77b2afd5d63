package model

// G0 is standard gravity in m/s², the conversion between mass flow and
// weight flow used by every performance formula in this module. It is
// defined exactly once so the value cannot silently diverge between
// components.
const G0 = 9.80665
