// Package gazetteer maintains the curated table of named places and zones
// used to resolve free-text route descriptions into canonical locations.
// The table is static: it is built once at startup and never mutated.
package gazetteer

// Place is one entry of the curated city table.
type Place struct {
	Key     string   `json:"key"`
	Name    string   `json:"name"`
	Lat     float64  `json:"lat"`
	Lng     float64  `json:"lng"`
	Aliases []string `json:"aliases,omitempty"`
}

// Zone is a named grouping of place keys. Zones back the same-zone test and
// map an agent's preferred zone to concrete places.
type Zone struct {
	Key    string   `json:"key"`
	Name   string   `json:"name"`
	Places []string `json:"places"`
}

// DefaultPlaces returns the built-in place table.
// Declaration order is part of the resolution contract: when a free-text
// route matches more than one place, the first declared place wins.
func DefaultPlaces() []Place {
	return []Place{
		{Key: "cdmx", Name: "Ciudad de México", Lat: 19.4326, Lng: -99.1332, Aliases: []string{"ciudad de mexico", "mexico city", "df", "distrito federal"}},
		{Key: "puebla", Name: "Puebla", Lat: 19.0414, Lng: -98.2063, Aliases: []string{"puebla de zaragoza", "heroica puebla"}},
		{Key: "tehuacan", Name: "Tehuacán", Lat: 18.4617, Lng: -97.3929, Aliases: []string{"tehuacan puebla"}},
		{Key: "toluca", Name: "Toluca", Lat: 19.2826, Lng: -99.6557, Aliases: []string{"toluca de lerdo"}},
		{Key: "queretaro", Name: "Querétaro", Lat: 20.5888, Lng: -100.3899, Aliases: []string{"santiago de queretaro", "qro"}},
		{Key: "cuernavaca", Name: "Cuernavaca", Lat: 18.9242, Lng: -99.2216},
		{Key: "pachuca", Name: "Pachuca", Lat: 20.1011, Lng: -98.7591, Aliases: []string{"pachuca de soto"}},
		{Key: "tlaxcala", Name: "Tlaxcala", Lat: 19.3139, Lng: -98.2404},
		{Key: "apizaco", Name: "Apizaco", Lat: 19.4167, Lng: -98.1436},
		{Key: "atlixco", Name: "Atlixco", Lat: 18.9077, Lng: -98.4368},
		{Key: "texmelucan", Name: "San Martín Texmelucan", Lat: 19.2833, Lng: -98.4333, Aliases: []string{"san martin texmelucan", "san martin"}},
		{Key: "veracruz", Name: "Veracruz", Lat: 19.1738, Lng: -96.1342, Aliases: []string{"puerto de veracruz"}},
		{Key: "orizaba", Name: "Orizaba", Lat: 18.8510, Lng: -97.0963},
		{Key: "cordoba", Name: "Córdoba", Lat: 18.8942, Lng: -96.9347, Aliases: []string{"cordoba veracruz"}},
		{Key: "xalapa", Name: "Xalapa", Lat: 19.5438, Lng: -96.9102, Aliases: []string{"jalapa"}},
		{Key: "leon", Name: "León", Lat: 21.1219, Lng: -101.6833, Aliases: []string{"leon guanajuato"}},
		{Key: "celaya", Name: "Celaya", Lat: 20.5235, Lng: -100.8157},
		{Key: "slp", Name: "San Luis Potosí", Lat: 22.1565, Lng: -100.9855, Aliases: []string{"san luis potosi", "san luis"}},
		{Key: "aguascalientes", Name: "Aguascalientes", Lat: 21.8853, Lng: -102.2916, Aliases: []string{"ags"}},
		{Key: "guadalajara", Name: "Guadalajara", Lat: 20.6597, Lng: -103.3496, Aliases: []string{"gdl", "zapopan"}},
		{Key: "monterrey", Name: "Monterrey", Lat: 25.6866, Lng: -100.3161, Aliases: []string{"mty"}},
		{Key: "saltillo", Name: "Saltillo", Lat: 25.4383, Lng: -100.9737},
	}
}

// DefaultZones returns the built-in zone table.
func DefaultZones() []Zone {
	return []Zone{
		{Key: "centro", Name: "Zona Centro", Places: []string{"cdmx", "toluca", "cuernavaca", "pachuca", "queretaro"}},
		{Key: "puebla-tlaxcala", Name: "Zona Puebla-Tlaxcala", Places: []string{"puebla", "tehuacan", "tlaxcala", "apizaco", "atlixco", "texmelucan"}},
		{Key: "golfo", Name: "Zona Golfo", Places: []string{"veracruz", "orizaba", "cordoba", "xalapa"}},
		{Key: "bajio", Name: "Zona Bajío", Places: []string{"leon", "celaya", "slp", "aguascalientes", "queretaro"}},
		{Key: "occidente", Name: "Zona Occidente", Places: []string{"guadalajara"}},
		{Key: "norte", Name: "Zona Norte", Places: []string{"monterrey", "saltillo"}},
	}
}
