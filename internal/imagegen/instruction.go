package imagegen

import "strings"

// identityPreamble keeps the subject consistent across every scene.
const identityPreamble = "Generate a photorealistic image of the person. " +
	"Maintain the person's identity, facial features, body proportions, and lighting. "

// BuildInstruction prefixes a scene description with the identity preamble.
func BuildInstruction(detail string) string {
	detail = strings.TrimSpace(detail)
	if strings.HasPrefix(detail, strings.TrimSpace(identityPreamble)) {
		return detail
	}
	return identityPreamble + detail
}
