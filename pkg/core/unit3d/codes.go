package unit3d

import "strings"

// Label-to-ID tables for the tracker's category, type and resolution
// enums. Unknown labels never fail a lookup; they map to the tracker's
// documented default code.

const (
	defaultCategoryID   = "0"
	defaultTypeID       = "0"
	defaultResolutionID = "10"
)

var categoryIDs = map[string]string{
	"MOVIE": "1",
	"TV":    "2",
}

var typeIDs = map[string]string{
	"DISC":   "1",
	"REMUX":  "2",
	"ENCODE": "3",
	"WEBDL":  "4",
	"WEBRIP": "5",
	"HDTV":   "6",
}

var resolutionIDs = map[string]string{
	"8640p": "10",
	"4320p": "1",
	"2160p": "2",
	"1440p": "3",
	"1080p": "3",
	"1080i": "4",
	"720p":  "5",
	"576p":  "6",
	"576i":  "7",
	"480p":  "8",
	"480i":  "9",
}

// CategoryID maps a category label to the tracker's numeric code.
func CategoryID(category string) string {
	if id, ok := categoryIDs[category]; ok {
		return id
	}
	return defaultCategoryID
}

// TypeID maps a type label to the tracker's numeric code.
func TypeID(typ string) string {
	if id, ok := typeIDs[typ]; ok {
		return id
	}
	return defaultTypeID
}

// ResolutionID maps a resolution label to the tracker's numeric code.
func ResolutionID(resolution string) string {
	if id, ok := resolutionIDs[resolution]; ok {
		return id
	}
	return defaultResolutionID
}

// Region and distributor identifiers for disc releases. A zero return
// means unknown and the field is left off the upload form entirely.

var regionIDs = map[string]int{
	"AUS": 12, "BEL": 21, "BRA": 28, "CAN": 37, "CHN": 44, "CZE": 57,
	"DEN": 59, "ESP": 67, "EUR": 70, "FIN": 73, "FRA": 76, "GBR": 80,
	"GER": 82, "GRE": 86, "HKG": 93, "IND": 103, "ITA": 110, "JPN": 114,
	"KOR": 122, "MEX": 140, "NLD": 157, "NOR": 161, "POL": 176,
	"PRT": 179, "RUS": 186, "SWE": 203, "TWN": 214, "USA": 240,
}

var distributorIDs = map[string]int{
	"ARROW": 14, "CRITERION": 49, "DISNEY": 54, "KINO LORBER": 88,
	"LIONSGATE": 94, "MGM": 103, "PARAMOUNT": 120, "SHOUT FACTORY": 151,
	"SONY": 158, "STUDIOCANAL": 163, "UNIVERSAL": 176, "WARNER": 184,
}

// RegionID resolves a disc region code, 0 when unknown.
func RegionID(region string) int {
	return regionIDs[strings.ToUpper(strings.TrimSpace(region))]
}

// DistributorID resolves a disc distributor name, 0 when unknown.
func DistributorID(distributor string) int {
	return distributorIDs[strings.ToUpper(strings.TrimSpace(distributor))]
}

// BannedGroup is a release group the tracker refuses, optionally with a
// note on why or on how the ban is scoped.
type BannedGroup struct {
	Name   string
	Reason string
}

var bannedGroups = []BannedGroup{
	{Name: "[Oj]"}, {Name: "3LTON"}, {Name: "4yEo"}, {Name: "ADE"},
	{Name: "AFG"}, {Name: "AniHLS"}, {Name: "AnimeRG"}, {Name: "AniURL"},
	{Name: "AROMA"}, {Name: "aXXo"}, {Name: "Brrip"}, {Name: "CHD"},
	{Name: "CM8"}, {Name: "CrEwSaDe"}, {Name: "d3g"}, {Name: "DeadFish"},
	{Name: "DNL"}, {Name: "ELiTE"}, {Name: "eSc"}, {Name: "FaNGDiNG0"},
	{Name: "FGT"}, {Name: "Flights"}, {Name: "FRDS"}, {Name: "FUM"},
	{Name: "HAiKU"}, {Name: "HD2DVD"}, {Name: "HDS"}, {Name: "HDTime"},
	{Name: "Hi10"}, {Name: "ION10"}, {Name: "iPlanet"}, {Name: "JIVE"},
	{Name: "KiNGDOM"}, {Name: "Leffe"}, {Name: "LEGi0N"}, {Name: "LOAD"},
	{Name: "MeGusta"}, {Name: "mHD"}, {Name: "mSD"}, {Name: "NhaNc3"},
	{Name: "nHD"}, {Name: "nikt0"}, {Name: "NOIVTC"}, {Name: "OFT"},
	{Name: "nSD"}, {Name: "PiRaTeS"}, {Name: "playBD"}, {Name: "PlaySD"},
	{Name: "playXD"}, {Name: "PRODJi"}, {Name: "RAPiDCOWS"}, {Name: "RARBG"},
	{Name: "RetroPeeps"}, {Name: "RDN"}, {Name: "REsuRRecTioN"}, {Name: "RMTeam"},
	{Name: "SANTi"}, {Name: "SicFoI"}, {Name: "SPASM"}, {Name: "SPDVD"},
	{Name: "STUTTERSHIT"}, {Name: "Telly"}, {Name: "TM"}, {Name: "TRiToN"},
	{Name: "UPiNSMOKE"}, {Name: "URANiME"}, {Name: "WAF"}, {Name: "x0r"},
	{Name: "xRed"}, {Name: "XS"}, {Name: "YIFY"}, {Name: "ZKBL"},
	{Name: "ZmN"}, {Name: "ZMNT"}, {Name: "AOC"},
	{Name: "EVO", Reason: "Raw Content Only"},
	{Name: "TERMiNAL", Reason: "Raw Content Only"},
	{Name: "ViSION", Reason: "Note the capitalization and characters used"},
	{Name: "CMRG", Reason: "Raw Content Only"},
}

// BannedGroupReason reports whether a release group is banned and, if
// so, the tracker's note. Matching is exact: ban entries deliberately
// distinguish capitalization variants.
func BannedGroupReason(group string) (string, bool) {
	for _, b := range bannedGroups {
		if b.Name == group {
			return b.Reason, true
		}
	}
	return "", false
}
