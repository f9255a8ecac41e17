// Package ledgerconfig loads the chart of accounts and the automatic posting rules.
// Both ship embedded; the posting rules can be overridden from a file.
package ledgerconfig

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
)

//go:embed chart_of_accounts.yaml
var defaultChart []byte

//go:embed posting_rules.yaml
var defaultRules []byte

type ChartAccount struct {
	Code        string             `yaml:"code"`
	Name        string             `yaml:"name"`
	Type        domain.AccountType `yaml:"type"`
	Parent      string             `yaml:"parent"`
	Description string             `yaml:"description"`
}

type Chart struct {
	Accounts []ChartAccount `yaml:"accounts"`
}

// DefaultChart returns the embedded chart of accounts.
func DefaultChart() (*Chart, error) {
	return ParseChart(defaultChart)
}

// ParseChart decodes and validates a chart: known types, unique codes, parents present with the same type.
func ParseChart(data []byte) (*Chart, error) {
	var chart Chart
	if err := yaml.Unmarshal(data, &chart); err != nil {
		return nil, fmt.Errorf("decode chart of accounts: %w", err)
	}
	if len(chart.Accounts) == 0 {
		return nil, fmt.Errorf("chart of accounts is empty")
	}

	byCode := make(map[string]ChartAccount, len(chart.Accounts))
	for _, a := range chart.Accounts {
		if a.Code == "" || a.Name == "" {
			return nil, fmt.Errorf("chart account needs code and name: %+v", a)
		}
		if !a.Type.IsValid() {
			return nil, fmt.Errorf("chart account %s: unknown type %q", a.Code, a.Type)
		}
		if _, dup := byCode[a.Code]; dup {
			return nil, fmt.Errorf("chart account %s defined twice", a.Code)
		}
		byCode[a.Code] = a
	}
	for _, a := range chart.Accounts {
		if a.Parent == "" {
			continue
		}
		parent, ok := byCode[a.Parent]
		if !ok {
			return nil, fmt.Errorf("chart account %s: parent %s not found", a.Code, a.Parent)
		}
		if parent.Type != a.Type {
			return nil, fmt.Errorf("chart account %s: parent %s has type %s, want %s", a.Code, a.Parent, parent.Type, a.Type)
		}
	}
	return &chart, nil
}

// Codes lists the chart's account codes.
func (c *Chart) Codes() map[string]struct{} {
	out := make(map[string]struct{}, len(c.Accounts))
	for _, a := range c.Accounts {
		out[a.Code] = struct{}{}
	}
	return out
}

// AccountSelector resolves an account code from event attributes.
type AccountSelector struct {
	Default   string            `yaml:"default"`
	Attribute string            `yaml:"attribute"`
	Values    map[string]string `yaml:"values"`
}

// Resolve picks the account code for the given attribute lookup.
func (s AccountSelector) Resolve(attr func(string) string) string {
	if s.Attribute != "" && attr != nil {
		if code, ok := s.Values[attr(s.Attribute)]; ok {
			return code
		}
	}
	return s.Default
}

func (s AccountSelector) codes() []string {
	out := []string{s.Default}
	for _, c := range s.Values {
		out = append(out, c)
	}
	return out
}

type PostingRule struct {
	Event       string                   `yaml:"event"`
	SourceType  domain.JournalSourceType `yaml:"source_type"`
	Description string                   `yaml:"description"`
	Debit       AccountSelector          `yaml:"debit"`
	Credit      AccountSelector          `yaml:"credit"`
}

// RenderDescription fills {key} placeholders from values. Unknown placeholders are left as is.
func (r PostingRule) RenderDescription(values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.TrimSpace(strings.NewReplacer(pairs...).Replace(r.Description))
}

type PostingRules struct {
	Rules   []PostingRule `yaml:"rules"`
	byEvent map[string]PostingRule
}

// LoadPostingRules reads rules from path, or the embedded defaults when path is empty.
func LoadPostingRules(path string) (*PostingRules, error) {
	if path == "" {
		return ParsePostingRules(defaultRules)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read posting rules %s: %w", path, err)
	}
	return ParsePostingRules(data)
}

func ParsePostingRules(data []byte) (*PostingRules, error) {
	var rules PostingRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("decode posting rules: %w", err)
	}
	rules.byEvent = make(map[string]PostingRule, len(rules.Rules))
	for _, r := range rules.Rules {
		if r.Event == "" {
			return nil, fmt.Errorf("posting rule without event")
		}
		if !r.SourceType.IsValid() || r.SourceType == domain.SourceManual || r.SourceType == domain.SourceReversal {
			return nil, fmt.Errorf("posting rule %s: invalid source type %q", r.Event, r.SourceType)
		}
		if r.Debit.Default == "" || r.Credit.Default == "" {
			return nil, fmt.Errorf("posting rule %s: debit and credit need a default account", r.Event)
		}
		if _, dup := rules.byEvent[r.Event]; dup {
			return nil, fmt.Errorf("posting rule %s defined twice", r.Event)
		}
		rules.byEvent[r.Event] = r
	}
	return &rules, nil
}

func (p *PostingRules) ForEvent(event string) (PostingRule, bool) {
	r, ok := p.byEvent[event]
	return r, ok
}

// ForSource finds the rule that produces journals of the given source type.
func (p *PostingRules) ForSource(source domain.JournalSourceType) (PostingRule, bool) {
	for _, r := range p.Rules {
		if r.SourceType == source {
			return r, true
		}
	}
	return PostingRule{}, false
}

// AccountCodes lists every account code the rules can resolve to, sorted.
func (p *PostingRules) AccountCodes() []string {
	seen := map[string]struct{}{}
	for _, r := range p.Rules {
		for _, c := range append(r.Debit.codes(), r.Credit.codes()...) {
			seen[c] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// CheckAgainst returns an error naming rule accounts missing from the chart.
func (p *PostingRules) CheckAgainst(chart *Chart) error {
	codes := chart.Codes()
	var missing []string
	for _, c := range p.AccountCodes() {
		if _, ok := codes[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("posting rules reference accounts missing from the chart: %s", strings.Join(missing, ", "))
	}
	return nil
}
