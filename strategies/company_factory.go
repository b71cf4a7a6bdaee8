package strategies

import (
	"math/rand/v2"

	"github.com/scooter-solver/contest/contesttypes"
)

// CompanyFactory builds companies with names that are unique within the factory.
// All companies share the factory's random source, so a factory belongs to a
// single goroutine.
type CompanyFactory struct {
	namer *Namer
	r     *rand.Rand
	used  map[string]bool
}

func NewCompanyFactory(namer *Namer, r *rand.Rand) *CompanyFactory {
	return &CompanyFactory{
		namer: namer,
		r:     r,
		used:  map[string]bool{},
	}
}

func (f *CompanyFactory) NewUniform() contesttypes.Bidder {
	return NewUniformCompany(f.name(), f.r)
}

func (f *CompanyFactory) NewNeutral() contesttypes.Bidder {
	return NewNeutralCompany(f.name(), f.r)
}

func (f *CompanyFactory) NewAggressive() contesttypes.Bidder {
	return NewAggressiveCompany(f.name(), f.r)
}

func (f *CompanyFactory) NewCustom(params CustomParams) *CustomCompany {
	return NewCustomCompany(f.name(), params)
}

func (f *CompanyFactory) name() string {
	return f.namer.UniqueName(f.r, f.used)
}
