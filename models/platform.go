package models

// Platform is one of the five supported social networks.
type Platform string

const (
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformTwitter   Platform = "twitter"
)

// PlatformOrder is the fixed fan-out order. Output position is defined by
// this list, never by completion order.
var PlatformOrder = []Platform{
	PlatformLinkedIn,
	PlatformTikTok,
	PlatformInstagram,
	PlatformFacebook,
	PlatformTwitter,
}

// PlatformRules holds the per-platform output limits. TotalMaxChars is the
// combined hook+body+cta budget including the two newline separators; only
// twitter enforces one.
type PlatformRules struct {
	Platform      Platform
	Guidance      string
	MaxHookChars  int
	MaxBodyChars  int
	MaxCTAChars   int
	MaxHashtags   int
	TotalMaxChars int // 0 means no combined cap
}

var platformRules = map[Platform]PlatformRules{
	PlatformLinkedIn: {
		Platform:     PlatformLinkedIn,
		Guidance:     "Professionel men menneskelig tone. Fokus på indsigt, troværdighed og klar struktur.",
		MaxHookChars: 180,
		MaxBodyChars: 2200,
		MaxCTAChars:  180,
		MaxHashtags:  5,
	},
	PlatformTikTok: {
		Platform:     PlatformTikTok,
		Guidance:     "Hurtig, energisk og talesprogsnær. Hooket skal fange inden for det første sekund.",
		MaxHookChars: 100,
		MaxBodyChars: 500,
		MaxCTAChars:  120,
		MaxHashtags:  8,
	},
	PlatformInstagram: {
		Platform:     PlatformInstagram,
		Guidance:     "Visuelt drevet og personlig. Letlæst caption med luft mellem afsnittene.",
		MaxHookChars: 150,
		MaxBodyChars: 2000,
		MaxCTAChars:  140,
		MaxHashtags:  12,
	},
	PlatformFacebook: {
		Platform:     PlatformFacebook,
		Guidance:     "Samtaleskabende og fællesskabsorienteret. Stil gerne et spørgsmål til læseren.",
		MaxHookChars: 180,
		MaxBodyChars: 2400,
		MaxCTAChars:  180,
		MaxHashtags:  6,
	},
	PlatformTwitter: {
		Platform:      PlatformTwitter,
		Guidance:      "Kort, skarpt og debatsikkert uden at opfinde fakta. Hold sproget punchy.",
		MaxHookChars:  80,
		MaxBodyChars:  160,
		MaxCTAChars:   60,
		MaxHashtags:   4,
		TotalMaxChars: 280,
	},
}

// RulesFor returns the output limits for a platform. The second return is
// false for unknown platform values.
func RulesFor(platform Platform) (PlatformRules, bool) {
	rules, ok := platformRules[platform]
	return rules, ok
}

// ValidPlatform reports whether the value is one of the five platforms.
func ValidPlatform(platform Platform) bool {
	_, ok := platformRules[platform]
	return ok
}
