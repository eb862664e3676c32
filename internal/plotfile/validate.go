package plotfile

import (
	"fmt"
	"slices"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Validate checks the cross-block consistency rules the HCL schema cannot
// express: name uniqueness, series shape, and data references. It reports
// the first violation found.
func Validate(model *Model) error {
	seen := make(map[string]struct{})
	for _, plot := range model.Plots {
		if _, dup := seen[plot.Name]; dup {
			return fmt.Errorf("duplicate plot name %q", plot.Name)
		}
		seen[plot.Name] = struct{}{}

		if err := validatePlot(plot); err != nil {
			return fmt.Errorf("plot %q: %w", plot.Name, err)
		}
	}
	return nil
}

func validatePlot(plot *Plot) error {
	labels := make([]string, 0, len(plot.Data))
	for _, d := range plot.Data {
		if slices.Contains(labels, d.Name) {
			return fmt.Errorf("duplicate data block %q", d.Name)
		}
		labels = append(labels, d.Name)
	}

	if len(plot.Series) == 0 && len(plot.Commands) == 0 {
		return fmt.Errorf("nothing to draw: no series and no commands")
	}

	for i, s := range plot.Series {
		if err := validateSeries(s, labels); err != nil {
			return fmt.Errorf("series %d: %w", i+1, err)
		}
	}

	for i, r := range plot.Repeats {
		if r.Over == "" {
			return fmt.Errorf("repeat %d: over must not be empty", i+1)
		}
		if len(r.Commands) == 0 {
			return fmt.Errorf("repeat %d: commands must not be empty", i+1)
		}
	}
	return nil
}

func validateSeries(s *Series, labels []string) error {
	if s.Raw != "" {
		if s.Data != "" || s.Using != "" || s.With != "" || s.Title != "" {
			return fmt.Errorf("raw excludes data, using, with and title")
		}
		return nil
	}
	if s.Using == "" {
		return fmt.Errorf("needs either raw or using")
	}
	if s.Data == "" {
		// An omitted data reference defaults to the plot's first data block.
		if len(labels) == 0 {
			return fmt.Errorf("references no data block and the plot defines none")
		}
		return nil
	}
	if !slices.Contains(labels, s.Data) {
		if closest := findClosestMatch(s.Data, labels); closest != "" {
			return fmt.Errorf("unknown data block %q, did you mean %q?", s.Data, closest)
		}
		return fmt.Errorf("unknown data block %q", s.Data)
	}
	return nil
}

// findClosestMatch finds the closest string match using fuzzy matching.
func findClosestMatch(target string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
