// Package prompt builds the text prompt sent to the image-generation API.
package prompt

import (
	"fmt"
	"time"

	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/domain"
	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/zodiac"
)

// DefaultDescriptor is used for vibe tags missing from the table
const DefaultDescriptor = "magical aura, glowing colors"

var descriptors = map[domain.VibeStyle]string{
	domain.VibeEthereal:       "ethereal glow, soft atmospheric, delicate light",
	domain.VibeCyberpunk:      "cyberpunk neon lights, dystopian cityscape, glowing wires",
	domain.VibeMystic:         "ancient mysticism, arcane symbols, deep magical glow",
	domain.VibeCelestial:      "cosmic stardust, swirling galaxy, nebulae colors",
	domain.VibeCrystalline:    "shimmering crystal facets, glowing gemstone light",
	domain.VibeBioluminescent: "glowing organic patterns, natural light, glowing flora",
	domain.VibeVaporwave:      "pastel neon aesthetic, retro grid lines, synthwave glow",
	domain.VibePainterly:      "expressive brushstrokes, watercolor texture, artistic render",
}

// Descriptor returns the style phrase for a vibe tag
func Descriptor(vibe domain.VibeStyle) string {
	if d, ok := descriptors[vibe]; ok {
		return d
	}
	return DefaultDescriptor
}

// Build returns the generation prompt for the given subject
func Build(age int, gender domain.Gender, sign domain.ZodiacSign, vibe domain.VibeStyle) string {
	return fmt.Sprintf("portrait of a %d-year-old %s, %s aura, %s, high detail, intricate, digital art",
		age, gender, sign, Descriptor(vibe))
}

// Describe returns the caption shown next to a generated aura
func Describe(sign domain.ZodiacSign, vibe domain.VibeStyle) string {
	return fmt.Sprintf("Behold, your majestic %s aura in a %s style!", sign, vibe)
}

// Composition is everything derived locally from a submission before any network call
type Composition struct {
	Zodiac      domain.ZodiacSign `json:"zodiac"`
	Age         int               `json:"age"`
	Prompt      string            `json:"prompt"`
	Description string            `json:"description"`
}

// Compose derives zodiac, age, prompt and description for a birth date as of today
func Compose(birth time.Time, gender domain.Gender, vibe domain.VibeStyle, today time.Time) Composition {
	sign := zodiac.SignFor(birth)
	age := zodiac.Age(birth, today)
	return Composition{
		Zodiac:      sign,
		Age:         age,
		Prompt:      Build(age, gender, sign, vibe),
		Description: Describe(sign, vibe),
	}
}
