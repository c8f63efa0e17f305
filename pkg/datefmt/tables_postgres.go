package datefmt

// postgresTable targets to_char(). FM suppresses padding.
// Emulated results are cast to text so that || accepts any neighbour.
var postgresTable = &table{
	native: map[rune]string{
		'd': "DD",
		'D': "Dy",
		'j': "FMDD",
		'l': "FMDay",
		'W': "IW",
		'F': "FMMonth",
		'm': "MM",
		'M': "Mon",
		'n': "FMMM",
		'o': "IYYY",
		'Y': "YYYY",
		'y': "YY",
		'a': "am",
		'A': "AM",
		'g': "FMHH12",
		'G': "FMHH24",
		'h': "HH12",
		'H': "HH24",
		'i': "MI",
		's': "SS",
	},
	emulated: map[rune]Recipe{
		'w': newTemplate("extract(dow from {expr})::integer::text"),
		't': newTemplate("extract(day from date_trunc('month', {expr}) + interval '1 month - 1 day')::integer::text"),
		'U': newTemplate("floor(extract(epoch from {expr}))::bigint::text"),
	},
}
