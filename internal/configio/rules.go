package configio

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmelosegui/mosaico/internal/rule"
)

type rawRules struct {
	Rule []rule.Rule `toml:"rule"`
}

// LoadRules decodes a rules.toml/user-rules.toml array of
// {match_class?, match_title?, manage}. A missing file yields an empty
// set.
func LoadRules(path string) ([]rule.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var raw rawRules
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return raw.Rule, nil
}

// FetchCommunityRules is a narrow, best-effort boundary: the actual
// network fetch of the community rule set is an external collaborator
// (mirrors the self-update downloader's scope boundary); this helper
// only loads whatever was already cached to rules.toml by that external
// process at a prior run.
func FetchCommunityRules(cachedPath string) []rule.Rule {
	rules, err := LoadRules(cachedPath)
	if err != nil {
		return nil
	}
	return rules
}
