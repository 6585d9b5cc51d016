package suitedata

import "sort"

// Storefront user scenarios
const (
	StandardUser          = "standard_user"
	LockedOutUser         = "locked_out_user"
	ProblemUser           = "problem_user"
	PerformanceGlitchUser = "performance_glitch_user"
	ErrorUser             = "error_user"
	VisualUser            = "visual_user"
)

// StorefrontPassword is shared by every storefront user
const StorefrontPassword = "secret_sauce"

// User holds the credentials and checkout form values of one scenario
type User struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	ZipCode   string
}

var users = map[string]User{
	StandardUser:          newUser(StandardUser),
	LockedOutUser:         newUser(LockedOutUser),
	ProblemUser:           newUser(ProblemUser),
	PerformanceGlitchUser: newUser(PerformanceGlitchUser),
	ErrorUser:             newUser(ErrorUser),
	VisualUser:            newUser(VisualUser),
}

func newUser(name string) User {
	return User{
		Username:  name,
		Password:  StorefrontPassword,
		FirstName: "John",
		LastName:  "Doe",
		ZipCode:   "12345",
	}
}

// LookupUser returns the user for a scenario name
func LookupUser(scenario string) (User, bool) {
	u, ok := users[scenario]
	return u, ok
}

// MustUser returns the user for a scenario name and panics on unknown names
func MustUser(scenario string) User {
	u, ok := LookupUser(scenario)
	if !ok {
		panic("suitedata: unknown user scenario " + scenario)
	}
	return u
}

// Scenarios returns every scenario name in sorted order
func Scenarios() []string {
	names := make([]string, 0, len(users))
	for name := range users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
