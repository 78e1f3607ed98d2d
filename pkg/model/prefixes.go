package model

// Standard SI prefix names usable in the Prefix field of a Unit row. The
// graph does not validate prefixes; these constants cover the names defined
// by the CellML specification.
const (
	PrefixYotta = "yotta"
	PrefixZetta = "zetta"
	PrefixExa   = "exa"
	PrefixPeta  = "peta"
	PrefixTera  = "tera"
	PrefixGiga  = "giga"
	PrefixMega  = "mega"
	PrefixKilo  = "kilo"
	PrefixHecto = "hecto"
	PrefixDeka  = "deka"
	PrefixDeci  = "deci"
	PrefixCenti = "centi"
	PrefixMilli = "milli"
	PrefixMicro = "micro"
	PrefixNano  = "nano"
	PrefixPico  = "pico"
	PrefixFemto = "femto"
	PrefixAtto  = "atto"
	PrefixZepto = "zepto"
	PrefixYocto = "yocto"
)
