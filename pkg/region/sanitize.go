package region

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// NewPolicy returns the policy applied to block markup: user generated
// content rules plus class, id and data attributes used by view templates.
func NewPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(regexp.MustCompile(`^[\w\- ]+$`)).Globally()
	policy.AllowDataAttributes()
	policy.AllowElements("article", "section", "header", "footer")
	return policy
}
