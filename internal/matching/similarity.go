package matching

import (
	"strings"

	"backtrack/internal/domain"
)

// Créditos parciales por atributo.
const (
	skinTonePartial       = 0.7
	colorPartial          = 0.6
	sameLengthPartial     = 0.5
	adjacentLengthPartial = 0.3
	facialHairPartial     = 0.5
	eyewearFamilyPartial  = 0.7
	accessoryPartial      = 0.3

	// AttributeMatchCutoff es la similitud mínima para contar un atributo como coincidente.
	AttributeMatchCutoff = 0.5
)

// Los grupos se solapan a propósito: Light es claro y medio, Brown es medio y oscuro.
var skinToneGroups = [][]string{
	{"Pale", "Light", "Yellow"},
	{"Light", "Tanned", "Brown"},
	{"Brown", "DarkBrown", "Black"},
}

var hairColorGroups = [][]string{
	{"Blonde", "BlondeGolden", "Platinum", "SilverGray"},
	{"Auburn", "Brown", "BrownDark"},
	{"Black", "BrownDark"},
	{"PastelPink", "Blue", "Red"},
}

type hairLength string

const (
	lengthUnknown hairLength = ""
	lengthNone    hairLength = "none"
	lengthShort   hairLength = "short"
	lengthLong    hairLength = "long"
	lengthCovered hairLength = "covered"
)

func topTypeLength(topType string) hairLength {
	switch {
	case topType == "NoHair", topType == "Eyepatch":
		return lengthNone
	case topType == "Hat", topType == "Hijab", topType == "Turban", strings.HasPrefix(topType, "WinterHat"):
		return lengthCovered
	case strings.HasPrefix(topType, "LongHair"):
		return lengthLong
	case strings.HasPrefix(topType, "ShortHair"):
		return lengthShort
	}
	return lengthUnknown
}

// Similarity devuelve la similitud en [0, 1] entre dos valores de un mismo atributo.
// Es simétrica; un valor fuera de la enumeración nunca recibe credito parcial.
func Similarity(attr domain.AvatarAttribute, v1, v2 string) float64 {
	if v1 == v2 {
		return 1.0
	}
	if !domain.IsKnownAvatarValue(attr, v1) || !domain.IsKnownAvatarValue(attr, v2) {
		return 0
	}

	switch attr {
	case domain.AttrSkinColor:
		if shareGroup(skinToneGroups, v1, v2) {
			return skinTonePartial
		}
	case domain.AttrHairColor, domain.AttrFacialHairColor:
		if shareGroup(hairColorGroups, v1, v2) {
			return colorPartial
		}
	case domain.AttrTopType:
		return topTypeSimilarity(v1, v2)
	case domain.AttrFacialHairType:
		// Tener o no tener barba es una diferencia dura.
		if v1 == domain.FacialHairNone || v2 == domain.FacialHairNone {
			return 0
		}
		return facialHairPartial
	case domain.AttrAccessoriesType:
		return accessorySimilarity(v1, v2)
	}
	return 0
}

func shareGroup(groups [][]string, v1, v2 string) bool {
	for _, group := range groups {
		if contains(group, v1) && contains(group, v2) {
			return true
		}
	}
	return false
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func topTypeSimilarity(v1, v2 string) float64 {
	l1, l2 := topTypeLength(v1), topTypeLength(v2)
	if l1 == lengthUnknown || l2 == lengthUnknown {
		return 0
	}
	if l1 == l2 {
		return sameLengthPartial
	}
	if (l1 == lengthShort && l2 == lengthNone) || (l1 == lengthNone && l2 == lengthShort) {
		return adjacentLengthPartial
	}
	return 0
}

func accessorySimilarity(v1, v2 string) float64 {
	if v1 == domain.AccessoriesNone || v2 == domain.AccessoriesNone {
		return 0
	}
	if isPrescription(v1) && isPrescription(v2) {
		return eyewearFamilyPartial
	}
	if (v1 == "Sunglasses" && v2 == "Wayfarers") || (v1 == "Wayfarers" && v2 == "Sunglasses") {
		return eyewearFamilyPartial
	}
	return accessoryPartial
}

func isPrescription(v string) bool {
	return strings.HasPrefix(v, "Prescription")
}
