package validate

import (
	"sort"
	"strings"

	"github.com/goliatone/go-aknprofile/pkg/diag"
	"github.com/goliatone/go-aknprofile/pkg/profile"
	"github.com/goliatone/go-aknprofile/pkg/schema"
)

// choiceRule rejects profiles that mix branches of an exclusive choice. A
// free-mix group (maxOccurs > 1) allows any combination, so only exclusive
// groups are checked. Members declared under the choice sub-map are
// alternatives and never count as mixing.
type choiceRule struct{}

func (choiceRule) ID() string { return "choice" }

func (choiceRule) Check(doc *profile.Document, model *schema.Model, _ profile.LineIndex) []diag.Error {
	var errs []diag.Error
	for _, name := range doc.Elements.Keys() {
		def, ok := model.Element(name)
		if !ok {
			continue
		}
		rest, _ := doc.Elements.Get(name)
		if rest.Children.Len() == 0 {
			continue
		}
		for _, group := range def.ChoiceGroups {
			if !group.Exclusive() {
				continue
			}
			used := make(map[string][]string)
			for _, childName := range rest.Children.Keys() {
				if branch, ok := group.BranchOf(childName); ok {
					used[branch.ID] = append(used[branch.ID], childName)
				}
			}
			if len(used) < 2 {
				continue
			}
			branchIDs := make([]string, 0, len(used))
			for id := range used {
				branchIDs = append(branchIDs, id)
			}
			sort.Strings(branchIDs)
			errs = append(errs, diag.Errorf("choice.mixed-branches", elementPath(name)+".children",
				"element %q mixes branches %s of exclusive choice %s; only one branch may be used",
				name, strings.Join(branchIDs, " and "), group.ID))
		}
	}
	return errs
}
