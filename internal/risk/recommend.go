package risk

import "strings"

// Advice holds the advisory lists selected for a dominant cause: one for
// authorities (enforcement, infrastructure) and one for road users.
type Advice struct {
	Authority []string `json:"authority"`
	Civilian  []string `json:"civilian"`
}

// category pairs matching keywords with the advice they select. Keywords are
// stems, matched as case-insensitive substrings, so "Overspeeding" and
// "speeding" both land in the speed category.
type category struct {
	keywords []string
	advice   Advice
}

// categories are evaluated in order; the first keyword match wins. Content
// is data, not logic: adding a category means adding an entry, not a branch.
var categories = []category{
	{
		keywords: []string{"weather", "rain", "fog"},
		advice: Advice{
			Authority: []string{
				"Issue weather advisories and lower speed limits during rain and fog",
				"Deploy additional patrol units along low-visibility stretches",
				"Audit drainage and road markings before the monsoon season",
			},
			Civilian: []string{
				"Slow down and double the following distance in rain or fog",
				"Use headlights and fog lamps in poor visibility",
				"Postpone non-essential travel during severe weather",
			},
		},
	},
	{
		keywords: []string{"speed", "overspeeding"},
		advice: Advice{
			Authority: []string{
				"Install speed cameras and warning signage on known speeding corridors",
				"Add traffic-calming measures near schools and markets",
				"Increase speed-limit enforcement during peak hours",
			},
			Civilian: []string{
				"Keep to posted speed limits",
				"Maintain a safe following distance",
				"Allow extra travel time instead of making it up on the road",
			},
		},
	},
	{
		keywords: []string{"inattent", "distract", "signal"},
		advice: Advice{
			Authority: []string{
				"Enforce distracted-driving penalties at high-risk junctions",
				"Upgrade signal timing and visibility at accident-prone intersections",
				"Run public campaigns on attentive driving",
			},
			Civilian: []string{
				"Put phones away while driving",
				"Obey traffic signals even when the road looks clear",
				"Stay alert at intersections and watch for cross traffic",
			},
		},
	},
	{
		keywords: []string{"alcohol", "drunk"},
		advice: Advice{
			Authority: []string{
				"Schedule sobriety checkpoints on high-risk nights",
				"Increase breathalyzer patrols near nightlife districts",
				"Fast-track prosecution of repeat drunk-driving offenders",
			},
			Civilian: []string{
				"Never drive after drinking",
				"Arrange a designated driver or use a taxi",
				"Report suspected drunk drivers to the police",
			},
		},
	},
	{
		keywords: []string{"pedestrian", "jaywalk"},
		advice: Advice{
			Authority: []string{
				"Build or repair footpaths and pedestrian crossings",
				"Add pedestrian signals and refuge islands on wide roads",
				"Fence medians where jaywalking is frequent",
			},
			Civilian: []string{
				"Cross only at marked crossings",
				"Stay on footpaths where available",
				"Make eye contact with drivers before crossing",
			},
		},
	},
	{
		keywords: []string{"overtak", "reckless"},
		advice: Advice{
			Authority: []string{
				"Mark no-overtaking zones on narrow and blind stretches",
				"Deploy patrols targeting dangerous lane changes",
				"Review lane markings and sight lines on undivided roads",
			},
			Civilian: []string{
				"Overtake only with clear visibility ahead",
				"Never overtake on blind curves or crests",
				"Give aggressive drivers plenty of room",
			},
		},
	},
}

// genericAdvice is returned when no category keyword matches the cause.
var genericAdvice = Advice{
	Authority: []string{
		"Review recent accident reports for emerging local patterns",
		"Schedule a road-safety audit for the area",
		"Maintain routine patrol coverage",
	},
	Civilian: []string{
		"Drive defensively and stay within speed limits",
		"Stay alert to local road conditions",
		"Report road hazards to local authorities",
	},
}

// Recommend returns advisory content for a dominant cause. Matching is a
// case-insensitive substring test against an ordered category list; causes
// that match nothing get the generic advisory pair.
func Recommend(dominantCause string) Advice {
	lower := strings.ToLower(dominantCause)
	for _, c := range categories {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.advice
			}
		}
	}
	return genericAdvice
}
