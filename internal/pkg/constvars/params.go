package constvars

const (
	URLParamID           = "id"
	URLParamPersonnummer = "personnummer"
)
