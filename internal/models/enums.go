package models

// Enum is implemented by every closed string set in the data model.
type Enum interface {
	IsValid() bool
}

// Category is the kind of garment.
type Category string

const (
	CategoryTops        Category = "tops"
	CategoryBottoms     Category = "bottoms"
	CategoryOuterwear   Category = "outerwear"
	CategoryDresses     Category = "dresses"
	CategoryShoes       Category = "shoes"
	CategoryAccessories Category = "accessories"
)

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool {
	switch c {
	case CategoryTops, CategoryBottoms, CategoryOuterwear, CategoryDresses, CategoryShoes, CategoryAccessories:
		return true
	}
	return false
}

// Color is the dominant color of an item.
type Color string

const (
	ColorBlack      Color = "black"
	ColorWhite      Color = "white"
	ColorRed        Color = "red"
	ColorBlue       Color = "blue"
	ColorGreen      Color = "green"
	ColorYellow     Color = "yellow"
	ColorPurple     Color = "purple"
	ColorPink       Color = "pink"
	ColorBrown      Color = "brown"
	ColorGray       Color = "gray"
	ColorSilver     Color = "silver"
	ColorMulticolor Color = "multicolor"
	ColorOther      Color = "other"
)

func (c Color) String() string { return string(c) }

func (c Color) IsValid() bool {
	switch c {
	case ColorBlack, ColorWhite, ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorPurple,
		ColorPink, ColorBrown, ColorGray, ColorSilver, ColorMulticolor, ColorOther:
		return true
	}
	return false
}

// Season an item or outfit is worn in.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
	SeasonAll    Season = "all"
)

func (s Season) String() string { return string(s) }

func (s Season) IsValid() bool {
	switch s {
	case SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter, SeasonAll:
		return true
	}
	return false
}

// Occasion an item or outfit suits.
type Occasion string

const (
	OccasionCasual   Occasion = "casual"
	OccasionFormal   Occasion = "formal"
	OccasionBusiness Occasion = "business"
	OccasionAthletic Occasion = "athletic"
	OccasionSpecial  Occasion = "special"
	OccasionOther    Occasion = "other"
)

func (o Occasion) String() string { return string(o) }

func (o Occasion) IsValid() bool {
	switch o {
	case OccasionCasual, OccasionFormal, OccasionBusiness, OccasionAthletic, OccasionSpecial, OccasionOther:
		return true
	}
	return false
}
