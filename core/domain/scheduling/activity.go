package scheduling

// TimeAllocation holds the durations (in minutes) an activity may take. When
// an activity IsGenderTimeAllocated, Male/Female override Default for clients
// of that sex; otherwise Default applies to everyone.
type TimeAllocation struct {
	Default int
	Male    *int
	Female  *int
}

// DurationFor resolves the duration in minutes for a client of the given sex.
func (ta TimeAllocation) DurationFor(sex ClientSex, genderAllocated bool) int {
	if !genderAllocated {
		return ta.Default
	}
	switch sex {
	case SexMale:
		if ta.Male != nil {
			return *ta.Male
		}
	case SexFemale:
		if ta.Female != nil {
			return *ta.Female
		}
	}
	return ta.Default
}

// Activity is one step in a client's day: check-in, bloods, an imaging scan,
// a consultation, lunch, checkout, and so on.
type Activity struct {
	ID                    ActivityID
	Name                  string
	RoomType              RoomType
	ResourceType          ResourceType
	TimeAllocations       TimeAllocation
	IsGenderTimeAllocated bool
	Enabled               bool
	Deleted               bool
}

// Usable reports whether the activity survives normalization.
func (a Activity) Usable() bool {
	return a.Enabled && !a.Deleted
}

// Duration resolves this activity's duration for a client of the given sex.
func (a Activity) Duration(sex ClientSex) int {
	return a.TimeAllocations.DurationFor(sex, a.IsGenderTimeAllocated)
}
