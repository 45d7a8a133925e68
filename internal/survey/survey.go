// Package survey decodes the fixed-layout coded survey extract into
// recoded respondent records.
package survey

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/dmcgrath/conflictpanel/internal/layout"
	"github.com/dmcgrath/conflictpanel/internal/recode"
)

// NumColumns is how many positional columns the selector consumes from the
// extract, in this order: religion, constituency, four organisation
// mentions, governance approval, job difficulty, living standard. Any
// further fields in the layout descriptor are ignored.
const NumColumns = 9

// Respondent is one survey row after column selection and recoding.
// Numeric attributes are ordinal codes with NaN as the missing sentinel.
type Respondent struct {
	Region     string // canonical constituency name, "" if the code is unmapped
	Religion   float64
	Governance float64
	Employment float64
	StdLiving  float64
	Orgs       [4]string // raw organisation mentions, sentinel included
}

// Load reads the extract at surveyPath using the descriptor at layoutPath
// and returns one recoded Respondent per data line.
func Load(surveyPath, layoutPath string) ([]Respondent, error) {
	l, err := layout.ParseFile(layoutPath)
	if err != nil {
		return nil, err
	}
	if len(l.Fields) < NumColumns {
		return nil, fmt.Errorf("layout descriptor defines %d fields, need at least %d", len(l.Fields), NumColumns)
	}

	f, err := os.Open(surveyPath)
	if err != nil {
		return nil, fmt.Errorf("opening survey extract: %w", err)
	}
	defer f.Close()

	var records []Respondent
	unmappedRegions := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		r := decode(l, line)
		if r.Region == "" {
			unmappedRegions++
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading survey extract: %w", err)
	}

	if unmappedRegions > 0 {
		log.Printf("%d survey records carry an unmapped constituency code and will not contribute to any region profile", unmappedRegions)
	}
	return records, nil
}

// decode selects the nine positional columns from one extract line and
// recodes them. Unmapped categorical values become missing, never errors.
func decode(l *layout.Layout, line string) Respondent {
	return Respondent{
		Religion: recode.Recode(l.Extract(line, 0), recode.Religion, recode.Missing),
		Region:   recode.Recode(l.Extract(line, 1), recode.Constituency, ""),
		Orgs: [4]string{
			l.Extract(line, 2),
			l.Extract(line, 3),
			l.Extract(line, 4),
			l.Extract(line, 5),
		},
		Governance: recode.Recode(l.Extract(line, 6), recode.Governance, recode.Missing),
		Employment: recode.Recode(l.Extract(line, 7), recode.Employment, recode.Missing),
		StdLiving:  recode.Recode(l.Extract(line, 8), recode.StdLiving, recode.Missing),
	}
}
