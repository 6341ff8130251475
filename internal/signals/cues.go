package signals

// #region cues

// DopamineCues marks tokens typical of distraction-seeking activity.
var DopamineCues = map[string]struct{}{
	"tiktok":    {},
	"youtube":   {},
	"bilibili":  {},
	"netflix":   {},
	"game":      {},
	"gaming":    {},
	"steam":     {},
	"browsing":  {},
	"scroll":    {},
	"feed":      {},
	"reddit":    {},
	"twitter":   {},
	"instagram": {},
	"video":     {},
	"shorts":    {},
	"discord":   {},
	"chat":      {},
	"ai_chat":   {},
}

// GoalCues marks tokens typical of goal-directed work.
var GoalCues = map[string]struct{}{
	"code":     {},
	"coding":   {},
	"ide":      {},
	"vscode":   {},
	"work":     {},
	"project":  {},
	"write":    {},
	"obsidian": {},
	"notion":   {},
	"note":     {},
	"research": {},
	"paper":    {},
	"doc":      {},
	"ppt":      {},
	"excel":    {},
	"analysis": {},
	"debug":    {},
	"terminal": {},
	"reading":  {},
}

// CognitiveHeavy marks tokens associated with cognitively demanding work.
var CognitiveHeavy = map[string]struct{}{
	"debug":        {},
	"compile":      {},
	"analysis":     {},
	"write":        {},
	"research":     {},
	"solve":        {},
	"problem":      {},
	"refactor":     {},
	"review":       {},
	"deploy":       {},
	"ide":          {},
	"editor":       {},
	"terminal":     {},
	"math":         {},
	"design":       {},
	"architecture": {},
}

// EmotionalPositive and EmotionalNegative drive the emotional tone score.
var EmotionalPositive = map[string]struct{}{
	"win":       {},
	"completed": {},
	"success":   {},
	"achieved":  {},
	"great":     {},
	"good":      {},
	"yay":       {},
	"love":      {},
}

var EmotionalNegative = map[string]struct{}{
	"fail":   {},
	"error":  {},
	"lost":   {},
	"died":   {},
	"crash":  {},
	"stuck":  {},
	"boring": {},
	"bad":    {},
	"angry":  {},
	"sad":    {},
}

// #endregion cues
