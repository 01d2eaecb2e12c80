package normalize

import "strings"

// RuleKind distinguishes the three matcher forms of the market rule table.
type RuleKind string

const (
	// PrefixExtract takes the 3-letter code immediately after the prefix,
	// e.g. "WTCH-LAX-9" with prefix "WTCH-" yields "LAX".
	PrefixExtract RuleKind = "prefix_extract"
	// PrefixCode maps a fixed prefix to a fixed code,
	// e.g. "SB-NYC-" yields "EWR".
	PrefixCode RuleKind = "prefix_code"
	// ContainsCode maps a sequence of substrings to a fixed code,
	// e.g. ["GoBolt", "NYC", "Cross-Dock"] yields "EWR".
	ContainsCode RuleKind = "contains_code"
)

// MarketRule is one (matcher, code) pair. Rules are tried in table order;
// first match wins.
type MarketRule struct {
	Kind     RuleKind `toml:"kind"`
	Prefix   string   `toml:"prefix"`
	Contains []string `toml:"contains"`
	Code     string   `toml:"code"`
}

// RuleTable holds the market extraction rules plus the broader crossdock
// patterns. Crossdock detection is looser than code assignment: a location
// matching a crossdock prefix still counts as a crossdock even when no rule
// resolves it to a market code.
type RuleTable struct {
	Rules             []MarketRule `toml:"rules"`
	CrossdockPrefixes []string     `toml:"crossdock_prefixes"`
	CrossdockContains []string     `toml:"crossdock_contains"`
}

// DefaultRuleTable returns the production rule set. Deployments can
// replace or extend it through config without code changes.
func DefaultRuleTable() RuleTable {
	return RuleTable{
		Rules: []MarketRule{
			{Kind: PrefixExtract, Prefix: "WTCH-"},
			{Kind: PrefixExtract, Prefix: "ACCL-"},
			{Kind: PrefixCode, Prefix: "SB-ATL-", Code: "ATL"},
			{Kind: PrefixCode, Prefix: "SB-DC-", Code: "DCA"},
			{Kind: PrefixCode, Prefix: "SB-DAL-", Code: "DFW"},
			{Kind: PrefixCode, Prefix: "SB-SEA-", Code: "SEA"},
			{Kind: PrefixCode, Prefix: "SB-LA-", Code: "LAX"},
			{Kind: PrefixCode, Prefix: "SB-DEN-", Code: "DEN"},
			{Kind: PrefixCode, Prefix: "SB-NYC-", Code: "EWR"},
			{Kind: PrefixCode, Prefix: "SB-PHX-", Code: "PHX"},
			{Kind: PrefixCode, Prefix: "SB-MIA-", Code: "MIA"},
			{Kind: ContainsCode, Contains: []string{"GoBolt", "NYC", "Cross-Dock"}, Code: "EWR"},
			{Kind: ContainsCode, Contains: []string{"Cross-Dock", "Chicago"}, Code: "ORD"},
		},
		CrossdockPrefixes: []string{"WTCH-", "ACCL-", "SB-"},
		CrossdockContains: []string{"Cross-Dock"},
	}
}

// Market extracts the 3-letter market code from a location name.
// Returns ("", false) when no rule matches; such locations are excluded
// from market-keyed aggregates but still appear in zip/route aggregates.
func (t RuleTable) Market(location string) (string, bool) {
	if location == "" {
		return "", false
	}
	for _, r := range t.Rules {
		switch r.Kind {
		case PrefixExtract:
			if strings.HasPrefix(location, r.Prefix) {
				rest := location[len(r.Prefix):]
				if len(rest) >= 3 {
					return rest[:3], true
				}
				return "", false
			}
		case PrefixCode:
			if strings.HasPrefix(location, r.Prefix) {
				return r.Code, true
			}
		case ContainsCode:
			if containsAll(location, r.Contains) {
				return r.Code, true
			}
		}
	}
	return "", false
}

// IsCrossdock reports whether a location is any kind of crossdock
// facility, whether or not a market code resolves for it.
func (t RuleTable) IsCrossdock(location string) bool {
	if location == "" {
		return false
	}
	for _, p := range t.CrossdockPrefixes {
		if strings.HasPrefix(location, p) {
			return true
		}
	}
	for _, sub := range t.CrossdockContains {
		if strings.Contains(location, sub) {
			return true
		}
	}
	return false
}

// containsAll checks the substrings appear in the location in order.
func containsAll(s string, subs []string) bool {
	rest := s
	for _, sub := range subs {
		idx := strings.Index(rest, sub)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(sub):]
	}
	return true
}

// Lane renders an ordered market pair as the display form used across
// reports and exports.
func Lane(from, to string) string {
	return from + " → " + to
}
