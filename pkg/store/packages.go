package store

// Package is a quick-pick coin bundle.
type Package struct {
	Coins   int64
	Bonus   int64
	Popular bool
}

func (p Package) Total() int64 {
	return p.Coins + p.Bonus
}

var DefaultPackages = []Package{
	{Coins: 50},
	{Coins: 100, Bonus: 10},
	{Coins: 250, Bonus: 35, Popular: true},
	{Coins: 500, Bonus: 85},
	{Coins: 1000, Bonus: 200},
}

// SelectPackage puts the bundle total, bonus included, in the form.
func (c *Calculator) SelectPackage(p Package) Quote {
	return c.SetCoins(p.Total())
}
