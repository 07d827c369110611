package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// AvatarAttribute nombra un rasgo físico o de estilo del avatar.
type AvatarAttribute string

const (
	AttrAvatarStyle     AvatarAttribute = "avatarStyle"
	AttrSkinColor       AvatarAttribute = "skinColor"
	AttrTopType         AvatarAttribute = "topType"
	AttrHairColor       AvatarAttribute = "hairColor"
	AttrFacialHairType  AvatarAttribute = "facialHairType"
	AttrFacialHairColor AvatarAttribute = "facialHairColor"
	AttrAccessoriesType AvatarAttribute = "accessoriesType"
	AttrEyeType         AvatarAttribute = "eyeType"
	AttrEyebrowType     AvatarAttribute = "eyebrowType"
	AttrMouthType       AvatarAttribute = "mouthType"
	AttrClotheType      AvatarAttribute = "clotheType"
	AttrClotheColor     AvatarAttribute = "clotheColor"
	AttrGraphicType     AvatarAttribute = "graphicType"
)

// Valores centinela con significado especial en el matching.
const (
	FacialHairNone     = "Blank"
	AccessoriesNone    = "Blank"
	ClotheGraphicShirt = "GraphicShirt"
)

// PrimaryAttributes son los rasgos que definen físicamente a la persona.
var PrimaryAttributes = []AvatarAttribute{
	AttrSkinColor,
	AttrTopType,
	AttrHairColor,
	AttrFacialHairType,
	AttrAccessoriesType,
}

// SecondaryAttributes son expresiones y estilo.
var SecondaryAttributes = []AvatarAttribute{
	AttrEyeType,
	AttrEyebrowType,
	AttrMouthType,
	AttrClotheType,
	AttrClotheColor,
	AttrFacialHairColor,
	AttrGraphicType,
}

// ScorableAttributes agrupa primarios y secundarios en orden estable.
// avatarStyle es solo de renderizado y no puntúa.
var ScorableAttributes = append(append([]AvatarAttribute{}, PrimaryAttributes...), SecondaryAttributes...)

// AvatarConfig describe un avatar completo: el "target" de un post o el avatar propio de un usuario.
type AvatarConfig struct {
	AvatarStyle     string `json:"avatarStyle,omitempty" yaml:"avatarStyle"`
	SkinColor       string `json:"skinColor" yaml:"skinColor"`
	TopType         string `json:"topType" yaml:"topType"`
	HairColor       string `json:"hairColor" yaml:"hairColor"`
	FacialHairType  string `json:"facialHairType" yaml:"facialHairType"`
	FacialHairColor string `json:"facialHairColor,omitempty" yaml:"facialHairColor"`
	AccessoriesType string `json:"accessoriesType" yaml:"accessoriesType"`
	EyeType         string `json:"eyeType,omitempty" yaml:"eyeType"`
	EyebrowType     string `json:"eyebrowType,omitempty" yaml:"eyebrowType"`
	MouthType       string `json:"mouthType,omitempty" yaml:"mouthType"`
	ClotheType      string `json:"clotheType,omitempty" yaml:"clotheType"`
	ClotheColor     string `json:"clotheColor,omitempty" yaml:"clotheColor"`
	GraphicType     string `json:"graphicType,omitempty" yaml:"graphicType"`
}

// DefaultAvatarConfig es el avatar inicial que ofrece la app.
var DefaultAvatarConfig = AvatarConfig{
	AvatarStyle:     "Circle",
	SkinColor:       "Light",
	TopType:         "ShortHairShortFlat",
	HairColor:       "Brown",
	FacialHairType:  FacialHairNone,
	FacialHairColor: "Brown",
	AccessoriesType: AccessoriesNone,
	EyeType:         "Default",
	EyebrowType:     "Default",
	MouthType:       "Default",
	ClotheType:      "ShirtCrewNeck",
	ClotheColor:     "Gray01",
	GraphicType:     "Bat",
}

// Value devuelve el valor del atributo pedido, o "" si no existe.
func (a AvatarConfig) Value(attr AvatarAttribute) string {
	switch attr {
	case AttrAvatarStyle:
		return a.AvatarStyle
	case AttrSkinColor:
		return a.SkinColor
	case AttrTopType:
		return a.TopType
	case AttrHairColor:
		return a.HairColor
	case AttrFacialHairType:
		return a.FacialHairType
	case AttrFacialHairColor:
		return a.FacialHairColor
	case AttrAccessoriesType:
		return a.AccessoriesType
	case AttrEyeType:
		return a.EyeType
	case AttrEyebrowType:
		return a.EyebrowType
	case AttrMouthType:
		return a.MouthType
	case AttrClotheType:
		return a.ClotheType
	case AttrClotheColor:
		return a.ClotheColor
	case AttrGraphicType:
		return a.GraphicType
	}
	return ""
}

// HasFacialHair indica si el avatar lleva algún tipo de barba o bigote.
func (a AvatarConfig) HasFacialHair() bool {
	return a.FacialHairType != "" && a.FacialHairType != FacialHairNone
}

// WearsGraphicShirt indica si la ropa tiene estampado.
func (a AvatarConfig) WearsGraphicShirt() bool {
	return a.ClotheType == ClotheGraphicShirt
}

// ErrInvalidAvatar es el error base de InvalidAvatarError.
var ErrInvalidAvatar = errors.New("invalid avatar")

// InvalidAvatarError lista los atributos con valores fuera de su enumeración.
type InvalidAvatarError struct {
	Missing []AvatarAttribute
	Unknown map[AvatarAttribute]string
}

func (e *InvalidAvatarError) Error() string {
	parts := make([]string, 0, len(e.Missing)+len(e.Unknown))
	for _, attr := range e.Missing {
		parts = append(parts, fmt.Sprintf("%s: missing", attr))
	}
	keys := make([]string, 0, len(e.Unknown))
	for attr := range e.Unknown {
		keys = append(keys, string(attr))
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: unknown value %q", k, e.Unknown[AvatarAttribute(k)]))
	}
	return ErrInvalidAvatar.Error() + ": " + strings.Join(parts, ", ")
}

func (e *InvalidAvatarError) Unwrap() error {
	return ErrInvalidAvatar
}

// Validate rechaza avatares con primarios vacíos o valores desconocidos.
// Los secundarios pueden faltar.
func (a AvatarConfig) Validate() error {
	var invalid InvalidAvatarError
	for _, attr := range PrimaryAttributes {
		if a.Value(attr) == "" {
			invalid.Missing = append(invalid.Missing, attr)
		}
	}
	for attr := range avatarValues {
		v := a.Value(attr)
		if v == "" || IsKnownAvatarValue(attr, v) {
			continue
		}
		if invalid.Unknown == nil {
			invalid.Unknown = make(map[AvatarAttribute]string)
		}
		invalid.Unknown[attr] = v
	}
	if len(invalid.Missing) == 0 && len(invalid.Unknown) == 0 {
		return nil
	}
	return &invalid
}
