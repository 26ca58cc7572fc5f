package stats

import "sort"

// Dimension identifies one demographic attribute of a student.
type Dimension string

// Demographic dimensions recognised by the level breakdown tables.
const (
	DimensionGender           Dimension = "gender"
	DimensionEthnicity        Dimension = "ethnicity"
	DimensionIEP              Dimension = "iep"
	DimensionLEP              Dimension = "lep"
	DimensionSection504       Dimension = "section504"
	DimensionEconDisadvantage Dimension = "econ_disadvantage"
	DimensionMigrant          Dimension = "migrant"
)

// Dimensions lists every known dimension in a stable order.
func Dimensions() []Dimension {
	return []Dimension{
		DimensionGender,
		DimensionEthnicity,
		DimensionIEP,
		DimensionLEP,
		DimensionSection504,
		DimensionEconDisadvantage,
		DimensionMigrant,
	}
}

// Profile is an immutable set of demographic facts about one student, keyed
// by dimension. Boolean program flags use the values "true" and "false".
type Profile struct {
	values map[Dimension]string
}

// NewProfile copies values into a new Profile.
func NewProfile(values map[Dimension]string) Profile {
	copied := make(map[Dimension]string, len(values))
	for dim, v := range values {
		copied[dim] = v
	}
	return Profile{values: copied}
}

// Value returns the student's value for dim, if the profile has one.
func (p Profile) Value(dim Dimension) (string, bool) {
	v, ok := p.values[dim]
	return v, ok
}

// Dimensions returns the dimensions present in the profile, sorted.
func (p Profile) Dimensions() []Dimension {
	dims := make([]Dimension, 0, len(p.values))
	for dim := range p.values {
		dims = append(dims, dim)
	}
	sort.Slice(dims, func(i, j int) bool { return dims[i] < dims[j] })
	return dims
}

// Len returns the number of dimensions in the profile.
func (p Profile) Len() int {
	return len(p.values)
}
