package studio

// TroubleshootingTips are shown next to a failed generation.
var TroubleshootingTips = []string{
	"Check your OpenAI API key",
	"Ensure output folder is accessible",
	"Verify internet connection",
}
