package geo

import (
	"context"
	"load-ranking-service/internal/domain"
	"load-ranking-service/internal/ports"
	"log"
	"sort"
	"strings"
)

// City is one entry in the static coordinate table.
type City struct {
	Name  string
	Coord domain.Coordinates
}

// CityDB resolves US city/state pairs to coordinates from a static table of
// major cities, with an optional online geocoder fallback for cities the
// table does not know.
type CityDB struct {
	Fallback ports.Geocoder
}

func NewCityDB(fallback ports.Geocoder) *CityDB {
	return &CityDB{Fallback: fallback}
}

// States returns all state codes in the table, sorted.
func (db *CityDB) States() []string {
	states := make([]string, 0, len(majorCities))
	for s := range majorCities {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}

// CitiesByState returns the table's cities for a state.
func (db *CityDB) CitiesByState(state string) []City {
	return majorCities[strings.ToUpper(strings.TrimSpace(state))]
}

// Common prefix/infix abbreviations seen in marketplace place names.
var cityAbbreviations = map[string]string{
	"jct":   "junction",
	"junct": "junction",
	"ft":    "fort",
	"st":    "saint",
	"mt":    "mount",
}

// CityCoordinates resolves a city within a state. Match order: exact name,
// abbreviation-expanded name, prefix match either direction, then the online
// fallback geocoder if configured.
func (db *CityDB) CityCoordinates(ctx context.Context, city, state string) (domain.Coordinates, bool) {
	cities := db.CitiesByState(state)
	cityLower := strings.ToLower(strings.TrimSpace(city))
	if cityLower == "" {
		return domain.Coordinates{}, false
	}

	for _, c := range cities {
		if strings.ToLower(c.Name) == cityLower {
			return c.Coord, true
		}
	}

	for abbrev, full := range cityAbbreviations {
		expanded := cityLower
		if strings.HasPrefix(cityLower, abbrev+" ") {
			expanded = full + strings.TrimPrefix(cityLower, abbrev)
		} else if strings.Contains(cityLower, " "+abbrev) {
			expanded = strings.ReplaceAll(cityLower, " "+abbrev, " "+full)
		}
		if expanded == cityLower {
			continue
		}
		for _, c := range cities {
			if strings.ToLower(c.Name) == expanded {
				return c.Coord, true
			}
		}
	}

	for _, c := range cities {
		nameLower := strings.ToLower(c.Name)
		if strings.HasPrefix(nameLower, cityLower) || strings.HasPrefix(cityLower, nameLower) {
			return c.Coord, true
		}
	}

	if db.Fallback != nil {
		coord, err := db.Fallback.Geocode(ctx, city, state)
		if err != nil {
			log.Printf("geocode fallback failed city=%q state=%s err=%v", city, state, err)
			return domain.Coordinates{}, false
		}
		log.Printf("geocode fallback resolved city=%q state=%s lat=%.4f lon=%.4f",
			city, state, coord.Lat, coord.Lon)
		return coord, true
	}

	return domain.Coordinates{}, false
}

// Major cities by state. Trimmed to the freight-relevant metros; anything
// else falls through to the online geocoder.
var majorCities = map[string][]City{
	"AL": {
		{Name: "Birmingham", Coord: domain.Coordinates{Lat: 33.5186, Lon: -86.8104}},
		{Name: "Mobile", Coord: domain.Coordinates{Lat: 30.6954, Lon: -88.0399}},
		{Name: "Montgomery", Coord: domain.Coordinates{Lat: 32.3617, Lon: -86.2792}},
		{Name: "Huntsville", Coord: domain.Coordinates{Lat: 34.7304, Lon: -86.5861}},
	},
	"AK": {
		{Name: "Anchorage", Coord: domain.Coordinates{Lat: 61.2181, Lon: -149.9003}},
		{Name: "Fairbanks", Coord: domain.Coordinates{Lat: 64.8378, Lon: -147.7164}},
	},
	"AZ": {
		{Name: "Phoenix", Coord: domain.Coordinates{Lat: 33.4484, Lon: -112.0740}},
		{Name: "Tucson", Coord: domain.Coordinates{Lat: 32.2226, Lon: -110.9747}},
		{Name: "Mesa", Coord: domain.Coordinates{Lat: 33.4152, Lon: -111.8315}},
		{Name: "Flagstaff", Coord: domain.Coordinates{Lat: 35.1983, Lon: -111.6513}},
	},
	"AR": {
		{Name: "Little Rock", Coord: domain.Coordinates{Lat: 34.7465, Lon: -92.2896}},
		{Name: "Fort Smith", Coord: domain.Coordinates{Lat: 35.3859, Lon: -94.3985}},
		{Name: "Fayetteville", Coord: domain.Coordinates{Lat: 36.0626, Lon: -94.1574}},
	},
	"CA": {
		{Name: "Los Angeles", Coord: domain.Coordinates{Lat: 34.0522, Lon: -118.2437}},
		{Name: "San Francisco", Coord: domain.Coordinates{Lat: 37.7749, Lon: -122.4194}},
		{Name: "San Diego", Coord: domain.Coordinates{Lat: 32.7157, Lon: -117.1611}},
		{Name: "Sacramento", Coord: domain.Coordinates{Lat: 38.5816, Lon: -121.4944}},
		{Name: "Fresno", Coord: domain.Coordinates{Lat: 36.7378, Lon: -119.7871}},
		{Name: "Oakland", Coord: domain.Coordinates{Lat: 37.8044, Lon: -122.2712}},
		{Name: "Bakersfield", Coord: domain.Coordinates{Lat: 35.3733, Lon: -119.0187}},
		{Name: "Long Beach", Coord: domain.Coordinates{Lat: 33.7701, Lon: -118.1937}},
	},
	"CO": {
		{Name: "Denver", Coord: domain.Coordinates{Lat: 39.7392, Lon: -104.9903}},
		{Name: "Colorado Springs", Coord: domain.Coordinates{Lat: 38.8339, Lon: -104.8214}},
		{Name: "Fort Collins", Coord: domain.Coordinates{Lat: 40.5853, Lon: -105.0844}},
	},
	"CT": {
		{Name: "Hartford", Coord: domain.Coordinates{Lat: 41.7658, Lon: -72.6734}},
		{Name: "Bridgeport", Coord: domain.Coordinates{Lat: 41.1865, Lon: -73.1952}},
		{Name: "New Haven", Coord: domain.Coordinates{Lat: 41.3083, Lon: -72.9279}},
	},
	"DE": {
		{Name: "Wilmington", Coord: domain.Coordinates{Lat: 39.7391, Lon: -75.5398}},
		{Name: "Dover", Coord: domain.Coordinates{Lat: 39.1612, Lon: -75.5264}},
	},
	"FL": {
		{Name: "Miami", Coord: domain.Coordinates{Lat: 25.7617, Lon: -80.1918}},
		{Name: "Tampa", Coord: domain.Coordinates{Lat: 27.9506, Lon: -82.4572}},
		{Name: "Orlando", Coord: domain.Coordinates{Lat: 28.5383, Lon: -81.3792}},
		{Name: "Jacksonville", Coord: domain.Coordinates{Lat: 30.3322, Lon: -81.6557}},
		{Name: "Fort Lauderdale", Coord: domain.Coordinates{Lat: 26.1224, Lon: -80.1373}},
		{Name: "Tallahassee", Coord: domain.Coordinates{Lat: 30.4518, Lon: -84.2727}},
	},
	"GA": {
		{Name: "Atlanta", Coord: domain.Coordinates{Lat: 33.7490, Lon: -84.3880}},
		{Name: "Augusta", Coord: domain.Coordinates{Lat: 33.4735, Lon: -82.0105}},
		{Name: "Savannah", Coord: domain.Coordinates{Lat: 32.0835, Lon: -81.0998}},
		{Name: "Macon", Coord: domain.Coordinates{Lat: 32.8407, Lon: -83.6324}},
	},
	"HI": {
		{Name: "Honolulu", Coord: domain.Coordinates{Lat: 21.3099, Lon: -157.8581}},
	},
	"ID": {
		{Name: "Boise", Coord: domain.Coordinates{Lat: 43.6150, Lon: -116.2023}},
		{Name: "Idaho Falls", Coord: domain.Coordinates{Lat: 43.4927, Lon: -112.0362}},
	},
	"IL": {
		{Name: "Chicago", Coord: domain.Coordinates{Lat: 41.8781, Lon: -87.6298}},
		{Name: "Peoria", Coord: domain.Coordinates{Lat: 40.6936, Lon: -89.5890}},
		{Name: "Rockford", Coord: domain.Coordinates{Lat: 42.2711, Lon: -89.0940}},
		{Name: "Springfield", Coord: domain.Coordinates{Lat: 39.7817, Lon: -89.6501}},
	},
	"IN": {
		{Name: "Indianapolis", Coord: domain.Coordinates{Lat: 39.7684, Lon: -86.1581}},
		{Name: "Fort Wayne", Coord: domain.Coordinates{Lat: 41.0793, Lon: -85.1394}},
		{Name: "Evansville", Coord: domain.Coordinates{Lat: 37.9716, Lon: -87.5710}},
		{Name: "South Bend", Coord: domain.Coordinates{Lat: 41.6764, Lon: -86.2520}},
	},
	"IA": {
		{Name: "Des Moines", Coord: domain.Coordinates{Lat: 41.5868, Lon: -93.6250}},
		{Name: "Cedar Rapids", Coord: domain.Coordinates{Lat: 41.9779, Lon: -91.6656}},
		{Name: "Davenport", Coord: domain.Coordinates{Lat: 41.5236, Lon: -90.5776}},
	},
	"KS": {
		{Name: "Wichita", Coord: domain.Coordinates{Lat: 37.6872, Lon: -97.3301}},
		{Name: "Kansas City", Coord: domain.Coordinates{Lat: 39.1142, Lon: -94.6275}},
		{Name: "Topeka", Coord: domain.Coordinates{Lat: 39.0473, Lon: -95.6890}},
	},
	"KY": {
		{Name: "Louisville", Coord: domain.Coordinates{Lat: 38.2527, Lon: -85.7585}},
		{Name: "Lexington", Coord: domain.Coordinates{Lat: 38.0406, Lon: -84.5037}},
		{Name: "Bowling Green", Coord: domain.Coordinates{Lat: 36.9685, Lon: -86.4808}},
	},
	"LA": {
		{Name: "New Orleans", Coord: domain.Coordinates{Lat: 29.9511, Lon: -90.0715}},
		{Name: "Baton Rouge", Coord: domain.Coordinates{Lat: 30.4515, Lon: -91.1871}},
		{Name: "Shreveport", Coord: domain.Coordinates{Lat: 32.5252, Lon: -93.7502}},
		{Name: "Lafayette", Coord: domain.Coordinates{Lat: 30.2241, Lon: -92.0198}},
	},
	"ME": {
		{Name: "Portland", Coord: domain.Coordinates{Lat: 43.6591, Lon: -70.2568}},
		{Name: "Lewiston", Coord: domain.Coordinates{Lat: 44.1003, Lon: -70.2148}},
	},
	"MD": {
		{Name: "Baltimore", Coord: domain.Coordinates{Lat: 39.2904, Lon: -76.6122}},
		{Name: "Frederick", Coord: domain.Coordinates{Lat: 39.4143, Lon: -77.4105}},
	},
	"MA": {
		{Name: "Boston", Coord: domain.Coordinates{Lat: 42.3601, Lon: -71.0589}},
		{Name: "Worcester", Coord: domain.Coordinates{Lat: 42.2626, Lon: -71.8023}},
		{Name: "Springfield", Coord: domain.Coordinates{Lat: 42.1015, Lon: -72.5898}},
	},
	"MI": {
		{Name: "Detroit", Coord: domain.Coordinates{Lat: 42.3314, Lon: -83.0458}},
		{Name: "Grand Rapids", Coord: domain.Coordinates{Lat: 42.9634, Lon: -85.6681}},
		{Name: "Lansing", Coord: domain.Coordinates{Lat: 42.7325, Lon: -84.5555}},
		{Name: "Flint", Coord: domain.Coordinates{Lat: 43.0125, Lon: -83.6875}},
	},
	"MN": {
		{Name: "Minneapolis", Coord: domain.Coordinates{Lat: 44.9778, Lon: -93.2650}},
		{Name: "Saint Paul", Coord: domain.Coordinates{Lat: 44.9537, Lon: -93.0900}},
		{Name: "Duluth", Coord: domain.Coordinates{Lat: 46.7867, Lon: -92.1005}},
	},
	"MS": {
		{Name: "Jackson", Coord: domain.Coordinates{Lat: 32.2988, Lon: -90.1848}},
		{Name: "Gulfport", Coord: domain.Coordinates{Lat: 30.3674, Lon: -89.0928}},
	},
	"MO": {
		{Name: "Kansas City", Coord: domain.Coordinates{Lat: 39.0997, Lon: -94.5786}},
		{Name: "Saint Louis", Coord: domain.Coordinates{Lat: 38.6270, Lon: -90.1994}},
		{Name: "Springfield", Coord: domain.Coordinates{Lat: 37.2090, Lon: -93.2923}},
	},
	"MT": {
		{Name: "Billings", Coord: domain.Coordinates{Lat: 45.7833, Lon: -108.5007}},
		{Name: "Missoula", Coord: domain.Coordinates{Lat: 46.8721, Lon: -113.9940}},
	},
	"NE": {
		{Name: "Omaha", Coord: domain.Coordinates{Lat: 41.2565, Lon: -95.9345}},
		{Name: "Lincoln", Coord: domain.Coordinates{Lat: 40.8136, Lon: -96.7026}},
	},
	"NV": {
		{Name: "Las Vegas", Coord: domain.Coordinates{Lat: 36.1699, Lon: -115.1398}},
		{Name: "Reno", Coord: domain.Coordinates{Lat: 39.5296, Lon: -119.8138}},
	},
	"NH": {
		{Name: "Manchester", Coord: domain.Coordinates{Lat: 42.9956, Lon: -71.4548}},
		{Name: "Nashua", Coord: domain.Coordinates{Lat: 42.7654, Lon: -71.4676}},
	},
	"NJ": {
		{Name: "Newark", Coord: domain.Coordinates{Lat: 40.7357, Lon: -74.1724}},
		{Name: "Jersey City", Coord: domain.Coordinates{Lat: 40.7178, Lon: -74.0431}},
		{Name: "Trenton", Coord: domain.Coordinates{Lat: 40.2206, Lon: -74.7597}},
	},
	"NM": {
		{Name: "Albuquerque", Coord: domain.Coordinates{Lat: 35.0844, Lon: -106.6504}},
		{Name: "Las Cruces", Coord: domain.Coordinates{Lat: 32.3199, Lon: -106.7637}},
	},
	"NY": {
		{Name: "New York", Coord: domain.Coordinates{Lat: 40.7128, Lon: -74.0060}},
		{Name: "Buffalo", Coord: domain.Coordinates{Lat: 42.8864, Lon: -78.8784}},
		{Name: "Rochester", Coord: domain.Coordinates{Lat: 43.1566, Lon: -77.6088}},
		{Name: "Syracuse", Coord: domain.Coordinates{Lat: 43.0481, Lon: -76.1474}},
		{Name: "Albany", Coord: domain.Coordinates{Lat: 42.6526, Lon: -73.7562}},
	},
	"NC": {
		{Name: "Charlotte", Coord: domain.Coordinates{Lat: 35.2271, Lon: -80.8431}},
		{Name: "Raleigh", Coord: domain.Coordinates{Lat: 35.7796, Lon: -78.6382}},
		{Name: "Greensboro", Coord: domain.Coordinates{Lat: 36.0726, Lon: -79.7920}},
		{Name: "Durham", Coord: domain.Coordinates{Lat: 35.9940, Lon: -78.8986}},
	},
	"ND": {
		{Name: "Fargo", Coord: domain.Coordinates{Lat: 46.8772, Lon: -96.7898}},
		{Name: "Bismarck", Coord: domain.Coordinates{Lat: 46.8083, Lon: -100.7837}},
	},
	"OH": {
		{Name: "Columbus", Coord: domain.Coordinates{Lat: 39.9612, Lon: -82.9988}},
		{Name: "Cleveland", Coord: domain.Coordinates{Lat: 41.4993, Lon: -81.6944}},
		{Name: "Cincinnati", Coord: domain.Coordinates{Lat: 39.1031, Lon: -84.5120}},
		{Name: "Toledo", Coord: domain.Coordinates{Lat: 41.6528, Lon: -83.5379}},
		{Name: "Akron", Coord: domain.Coordinates{Lat: 41.0814, Lon: -81.5190}},
	},
	"OK": {
		{Name: "Oklahoma City", Coord: domain.Coordinates{Lat: 35.4676, Lon: -97.5164}},
		{Name: "Tulsa", Coord: domain.Coordinates{Lat: 36.1540, Lon: -95.9928}},
	},
	"OR": {
		{Name: "Portland", Coord: domain.Coordinates{Lat: 45.5152, Lon: -122.6784}},
		{Name: "Salem", Coord: domain.Coordinates{Lat: 44.9429, Lon: -123.0351}},
		{Name: "Eugene", Coord: domain.Coordinates{Lat: 44.0521, Lon: -123.0868}},
	},
	"PA": {
		{Name: "Philadelphia", Coord: domain.Coordinates{Lat: 39.9526, Lon: -75.1652}},
		{Name: "Pittsburgh", Coord: domain.Coordinates{Lat: 40.4406, Lon: -79.9959}},
		{Name: "Allentown", Coord: domain.Coordinates{Lat: 40.6084, Lon: -75.4902}},
		{Name: "Harrisburg", Coord: domain.Coordinates{Lat: 40.2732, Lon: -76.8867}},
	},
	"RI": {
		{Name: "Providence", Coord: domain.Coordinates{Lat: 41.8240, Lon: -71.4128}},
	},
	"SC": {
		{Name: "Columbia", Coord: domain.Coordinates{Lat: 34.0007, Lon: -81.0348}},
		{Name: "Charleston", Coord: domain.Coordinates{Lat: 32.7765, Lon: -79.9311}},
		{Name: "Greenville", Coord: domain.Coordinates{Lat: 34.8526, Lon: -82.3940}},
	},
	"SD": {
		{Name: "Sioux Falls", Coord: domain.Coordinates{Lat: 43.5446, Lon: -96.7311}},
		{Name: "Rapid City", Coord: domain.Coordinates{Lat: 44.0805, Lon: -103.2310}},
	},
	"TN": {
		{Name: "Nashville", Coord: domain.Coordinates{Lat: 36.1627, Lon: -86.7816}},
		{Name: "Memphis", Coord: domain.Coordinates{Lat: 35.1495, Lon: -90.0490}},
		{Name: "Knoxville", Coord: domain.Coordinates{Lat: 35.9606, Lon: -83.9207}},
		{Name: "Chattanooga", Coord: domain.Coordinates{Lat: 35.0456, Lon: -85.3097}},
	},
	"TX": {
		{Name: "Houston", Coord: domain.Coordinates{Lat: 29.7604, Lon: -95.3698}},
		{Name: "Dallas", Coord: domain.Coordinates{Lat: 32.7767, Lon: -96.7970}},
		{Name: "San Antonio", Coord: domain.Coordinates{Lat: 29.4241, Lon: -98.4936}},
		{Name: "Austin", Coord: domain.Coordinates{Lat: 30.2672, Lon: -97.7431}},
		{Name: "Fort Worth", Coord: domain.Coordinates{Lat: 32.7555, Lon: -97.3308}},
		{Name: "El Paso", Coord: domain.Coordinates{Lat: 31.7619, Lon: -106.4850}},
		{Name: "Laredo", Coord: domain.Coordinates{Lat: 27.5306, Lon: -99.4803}},
		{Name: "Corpus Christi", Coord: domain.Coordinates{Lat: 27.8006, Lon: -97.3964}},
	},
	"UT": {
		{Name: "Salt Lake City", Coord: domain.Coordinates{Lat: 40.7608, Lon: -111.8910}},
		{Name: "Provo", Coord: domain.Coordinates{Lat: 40.2338, Lon: -111.6585}},
		{Name: "Ogden", Coord: domain.Coordinates{Lat: 41.2230, Lon: -111.9738}},
	},
	"VT": {
		{Name: "Burlington", Coord: domain.Coordinates{Lat: 44.4759, Lon: -73.2121}},
	},
	"VA": {
		{Name: "Virginia Beach", Coord: domain.Coordinates{Lat: 36.8529, Lon: -75.9780}},
		{Name: "Richmond", Coord: domain.Coordinates{Lat: 37.5407, Lon: -77.4360}},
		{Name: "Norfolk", Coord: domain.Coordinates{Lat: 36.8508, Lon: -76.2859}},
		{Name: "Roanoke", Coord: domain.Coordinates{Lat: 37.2710, Lon: -79.9414}},
	},
	"WA": {
		{Name: "Seattle", Coord: domain.Coordinates{Lat: 47.6062, Lon: -122.3321}},
		{Name: "Spokane", Coord: domain.Coordinates{Lat: 47.6588, Lon: -117.4260}},
		{Name: "Tacoma", Coord: domain.Coordinates{Lat: 47.2529, Lon: -122.4443}},
	},
	"WV": {
		{Name: "Charleston", Coord: domain.Coordinates{Lat: 38.3498, Lon: -81.6326}},
		{Name: "Huntington", Coord: domain.Coordinates{Lat: 38.4192, Lon: -82.4452}},
	},
	"WI": {
		{Name: "Milwaukee", Coord: domain.Coordinates{Lat: 43.0389, Lon: -87.9065}},
		{Name: "Madison", Coord: domain.Coordinates{Lat: 43.0731, Lon: -89.4012}},
		{Name: "Green Bay", Coord: domain.Coordinates{Lat: 44.5133, Lon: -88.0133}},
	},
	"WY": {
		{Name: "Cheyenne", Coord: domain.Coordinates{Lat: 41.1400, Lon: -104.8202}},
		{Name: "Casper", Coord: domain.Coordinates{Lat: 42.8666, Lon: -106.3131}},
	},
}
