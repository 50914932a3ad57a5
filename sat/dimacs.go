package sat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseDIMACS reads a formula in DIMACS CNF format.
// The weighted "wcnf" variant is also accepted: each clause line then starts with the clause weight.
// Comment lines start with 'c'.
func ParseDIMACS(r io.Reader) (*Satisfiability, error) {
	var (
		nbVars, nbClauses int
		weighted          bool
		headerFound       bool
		clauses           []Clause
		weights           []int
		current           Clause
		currentWeight     int
		weightRead        bool
	)
	sc := bufio.NewScanner(r)
	lineNb := 0
	for sc.Scan() {
		lineNb++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == 'c' || line[0] == '%' {
			continue
		}
		if line[0] == 'p' {
			var err error
			nbVars, nbClauses, weighted, err = parseHeader(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", lineNb, err)
			}
			headerFound = true
			continue
		}
		if !headerFound {
			return nil, fmt.Errorf("line %d: clause found before header", lineNb)
		}
		for _, field := range strings.Fields(line) {
			val, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("line %d: %q is not an int", lineNb, field)
			}
			if weighted && !weightRead {
				if val < 0 {
					return nil, fmt.Errorf("line %d: %w %d", lineNb, ErrNegativeWeight, val)
				}
				currentWeight, weightRead = val, true
				continue
			}
			if val != 0 {
				current = append(current, val)
				continue
			}
			clauses = append(clauses, current)
			if weighted {
				weights = append(weights, currentWeight)
			} else {
				weights = append(weights, 1)
			}
			current, currentWeight, weightRead = nil, 0, false
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not read DIMACS input: %v", err)
	}
	if len(current) != 0 || weightRead {
		return nil, fmt.Errorf("unfinished clause while EOF found")
	}
	if len(clauses) != nbClauses {
		return nil, fmt.Errorf("header announced %d clauses, found %d", nbClauses, len(clauses))
	}
	return NewWeighted(nbVars, clauses, weights)
}

func parseHeader(line string) (nbVars, nbClauses int, weighted bool, err error) {
	fields := strings.Fields(line)
	if len(fields) < 4 || (fields[1] != "cnf" && fields[1] != "wcnf") {
		return 0, 0, false, fmt.Errorf("invalid syntax %q in header", line)
	}
	nbVars, err = strconv.Atoi(fields[2])
	if err != nil {
		return 0, 0, false, fmt.Errorf("nbvars not an int : %q", fields[2])
	}
	nbClauses, err = strconv.Atoi(fields[3])
	if err != nil {
		return 0, 0, false, fmt.Errorf("nbClauses not an int : %q", fields[3])
	}
	return nbVars, nbClauses, fields[1] == "wcnf", nil
}

// WriteDIMACS writes s on w in DIMACS format.
// If any clause has a weight other than 1, the weighted "wcnf" variant is used.
func WriteDIMACS(w io.Writer, s *Satisfiability) error {
	weighted := false
	for _, wt := range s.weights {
		if wt != 1 {
			weighted = true
			break
		}
	}
	format := "cnf"
	if weighted {
		format = "wcnf"
	}
	if _, err := fmt.Fprintf(w, "p %s %d %d\n", format, s.nbVars, len(s.clauses)); err != nil {
		return fmt.Errorf("could not write DIMACS output: %v", err)
	}
	for i, clause := range s.clauses {
		terms := make([]string, 0, len(clause)+2)
		if weighted {
			terms = append(terms, strconv.Itoa(s.weights[i]))
		}
		for _, lit := range clause {
			terms = append(terms, strconv.Itoa(lit))
		}
		terms = append(terms, "0")
		if _, err := io.WriteString(w, strings.Join(terms, " ")+"\n"); err != nil {
			return fmt.Errorf("could not write DIMACS output: %v", err)
		}
	}
	return nil
}
