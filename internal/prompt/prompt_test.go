package prompt

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/domain"
)

func TestBuildEveryVibe(t *testing.T) {
	seen := map[string]bool{}
	for _, v := range domain.VibeStyles {
		p := Build(30, domain.GenderMale, domain.Leo, v)
		assert.NotEmpty(t, p)
		assert.Contains(t, p, Descriptor(v))
		assert.NotEqual(t, DefaultDescriptor, Descriptor(v), "vibe %s", v)
		seen[Descriptor(v)] = true
	}
	assert.Len(t, seen, len(domain.VibeStyles))
}

func TestBuildUnknownVibeFallsBack(t *testing.T) {
	p := Build(30, domain.GenderFemale, domain.Aries, domain.VibeStyle("grunge"))
	assert.Equal(t, "portrait of a 30-year-old female, Aries aura, magical aura, glowing colors, high detail, intricate, digital art", p)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Behold, your majestic Cancer aura in a celestial style!", Describe(domain.Cancer, domain.VibeCelestial))
}

func TestComposeCelestialCancer(t *testing.T) {
	birth := time.Date(2000, time.July, 4, 0, 0, 0, 0, time.UTC)
	today := time.Now()

	c := Compose(birth, domain.GenderFemale, domain.VibeCelestial, today)

	wantAge := today.Year() - 2000
	if today.Month() < time.July || (today.Month() == time.July && today.Day() < 4) {
		wantAge--
	}
	assert.Equal(t, domain.Cancer, c.Zodiac)
	assert.Equal(t, wantAge, c.Age)
	assert.Contains(t, c.Prompt, "cosmic stardust, swirling galaxy, nebulae colors")
	assert.Contains(t, c.Prompt, fmt.Sprintf("portrait of a %d-year-old female, Cancer aura", wantAge))
	assert.Equal(t, "Behold, your majestic Cancer aura in a celestial style!", c.Description)
}
