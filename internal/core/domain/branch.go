package domain

import "strings"

// Branch is a physical sales location.
type Branch struct {
	// LocalID is the stable numeric id stored in IdLocal.
	LocalID int

	// Name is stored in Sucursal.
	Name string
}

// UnknownBranch is returned for filenames that carry no known branch token.
var UnknownBranch = Branch{LocalID: 0, Name: "Unknown"}

// branchMapping is matched in order; the first token found in a filename wins.
var branchMapping = []struct {
	token  string
	branch Branch
}{
	{"Quito", Branch{LocalID: 1, Name: "Quito"}},
	{"Ambato", Branch{LocalID: 2, Name: "Ambato"}},
	{"Latacunga", Branch{LocalID: 3, Name: "Latacunga"}},
	{"Cuenca", Branch{LocalID: 4, Name: "Cuenca"}},
}

// ResolveBranch maps a filename to its branch by case-sensitive substring match.
// It is total: filenames without a known token resolve to UnknownBranch.
func ResolveBranch(filename string) Branch {
	for _, m := range branchMapping {
		if strings.Contains(filename, m.token) {
			return m.branch
		}
	}
	return UnknownBranch
}

// KnownBranches returns the fixed branch list in match order.
func KnownBranches() []Branch {
	branches := make([]Branch, 0, len(branchMapping))
	for _, m := range branchMapping {
		branches = append(branches, m.branch)
	}
	return branches
}
