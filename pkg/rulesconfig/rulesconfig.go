// Package rulesconfig loads the YAML rule files into the typed mappings the
// engines consume. The engines themselves never parse files; they receive
// these structs as read-only snapshots.
package rulesconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"cpsGrowth/business/commission"
	"cpsGrowth/business/funnel"
	"cpsGrowth/business/guardrail"
	"cpsGrowth/business/reasons"
	"cpsGrowth/business/recommend"
	"cpsGrowth/pkg/logger"
)

// RuleSet bundles the per-concern rule mappings, loaded once per process.
type RuleSet struct {
	Guardrails guardrail.Config
	Commission commission.Config
	Scoring    recommend.ScoringConfig
	Reasons    reasons.Config
	Funnel     funnel.Rules
}

// Load reads the rule files from dir. A missing file keeps the documented
// defaults for that concern; a malformed file is a hard error since it means
// the operator shipped something broken.
func Load(dir string) (*RuleSet, error) {
	rs := &RuleSet{
		Scoring: recommend.DefaultScoringConfig(),
		Reasons: reasons.DefaultConfig(),
		Funnel:  funnel.DefaultRules(),
	}

	files := []struct {
		name string
		out  any
	}{
		{"guardrails.yaml", &rs.Guardrails},
		{"commission.yaml", &rs.Commission},
		{"scoring.yaml", &rs.Scoring},
		{"reasons.yaml", &rs.Reasons},
		{"funnel_rules.yaml", &rs.Funnel},
	}

	for _, f := range files {
		if err := loadFile(filepath.Join(dir, f.name), f.out); err != nil {
			return nil, err
		}
	}

	return rs, nil
}

func loadFile(path string, out any) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Warn("Rule file missing, using defaults", "path", path)
		return nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load rule file %s: %w", path, err)
	}
	if err := k.Unmarshal("", out); err != nil {
		return fmt.Errorf("unmarshal rule file %s: %w", path, err)
	}

	return nil
}
