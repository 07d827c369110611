package domain

// Valores legales por atributo (estilo Avataaars).
var (
	AvatarStyles = []string{"Circle", "Transparent"}

	SkinColors = []string{"Pale", "Light", "Tanned", "Yellow", "Brown", "DarkBrown", "Black"}

	TopTypes = []string{
		"NoHair", "Eyepatch", "Hat", "Hijab", "Turban",
		"WinterHat1", "WinterHat2", "WinterHat3", "WinterHat4",
		"LongHairBigHair", "LongHairBob", "LongHairBun", "LongHairCurly", "LongHairCurvy",
		"LongHairDreads", "LongHairFrida", "LongHairFro", "LongHairFroBand", "LongHairNotTooLong",
		"LongHairShavedSides", "LongHairMiaWallace", "LongHairStraight", "LongHairStraight2",
		"LongHairStraightStrand",
		"ShortHairDreads01", "ShortHairDreads02", "ShortHairFrizzle", "ShortHairShaggyMullet",
		"ShortHairShortCurly", "ShortHairShortFlat", "ShortHairShortRound", "ShortHairShortWaved",
		"ShortHairSides", "ShortHairTheCaesar", "ShortHairTheCaesarSidePart",
	}

	HairColors = []string{
		"Auburn", "Black", "Blonde", "BlondeGolden", "Brown", "BrownDark",
		"PastelPink", "Blue", "Platinum", "Red", "SilverGray",
	}

	FacialHairTypes = []string{
		FacialHairNone, "BeardMedium", "BeardLight", "BeardMajestic", "MoustacheFancy", "MoustacheMagnum",
	}

	FacialHairColors = []string{
		"Auburn", "Black", "Blonde", "BlondeGolden", "Brown", "BrownDark", "Platinum", "Red",
	}

	AccessoriesTypes = []string{
		AccessoriesNone, "Kurt", "Prescription01", "Prescription02", "Round", "Sunglasses", "Wayfarers",
	}

	ClotheTypes = []string{
		"BlazerShirt", "BlazerSweater", "CollarSweater", ClotheGraphicShirt, "Hoodie", "Overall",
		"ShirtCrewNeck", "ShirtScoopNeck", "ShirtVNeck",
	}

	ClotheColors = []string{
		"Black", "Blue01", "Blue02", "Blue03", "Gray01", "Gray02", "Heather",
		"PastelBlue", "PastelGreen", "PastelOrange", "PastelRed", "PastelYellow", "Pink", "Red", "White",
	}

	GraphicTypes = []string{
		"Bat", "Cumbia", "Deer", "Diamond", "Hola", "Pizza", "Resist", "Selena", "Bear", "SkullOutline", "Skull",
	}

	EyeTypes = []string{
		"Close", "Cry", "Default", "Dizzy", "EyeRoll", "Happy", "Hearts", "Side", "Squint", "Surprised",
		"Wink", "WinkWacky",
	}

	EyebrowTypes = []string{
		"Angry", "AngryNatural", "Default", "DefaultNatural", "FlatNatural", "RaisedExcited",
		"RaisedExcitedNatural", "SadConcerned", "SadConcernedNatural", "UnibrowNatural", "UpDown",
		"UpDownNatural",
	}

	MouthTypes = []string{
		"Concerned", "Default", "Disbelief", "Eating", "Grimace", "Sad", "ScreamOpen", "Serious",
		"Smile", "Tongue", "Twinkle", "Vomit",
	}
)

var avatarValues = map[AvatarAttribute]map[string]struct{}{
	AttrAvatarStyle:     valueSet(AvatarStyles),
	AttrSkinColor:       valueSet(SkinColors),
	AttrTopType:         valueSet(TopTypes),
	AttrHairColor:       valueSet(HairColors),
	AttrFacialHairType:  valueSet(FacialHairTypes),
	AttrFacialHairColor: valueSet(FacialHairColors),
	AttrAccessoriesType: valueSet(AccessoriesTypes),
	AttrEyeType:         valueSet(EyeTypes),
	AttrEyebrowType:     valueSet(EyebrowTypes),
	AttrMouthType:       valueSet(MouthTypes),
	AttrClotheType:      valueSet(ClotheTypes),
	AttrClotheColor:     valueSet(ClotheColors),
	AttrGraphicType:     valueSet(GraphicTypes),
}

func valueSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// IsKnownAvatarValue indica si value pertenece a la enumeración del atributo.
func IsKnownAvatarValue(attr AvatarAttribute, value string) bool {
	set, ok := avatarValues[attr]
	if !ok {
		return false
	}
	_, ok = set[value]
	return ok
}
