package astro

// Position is the sun's apparent position for a given Julian Day.
type Position struct {
	Declination    float64 // degrees
	EquationOfTime float64 // hours, wrapped into [0, 24)
}

// SolarPosition computes the solar declination and equation of time using the
// low-precision almanac model (accurate to about a minute of time this century).
func SolarPosition(jd float64) Position {
	n := jd - J2000

	l := 280.466 + 0.9856474*n // mean longitude
	g := 357.528 + 0.9856003*n // mean anomaly
	lambda := l + 1.915*Sin(g) + 0.020*Sin(2*g)
	epsilon := 23.44 - 0.0000004*n

	decl := Asin(Sin(epsilon) * Sin(lambda))
	ra := Atan2(Cos(epsilon)*Sin(lambda), Cos(lambda))

	return Position{
		Declination:    decl,
		EquationOfTime: FixHour((l - ra) / 15),
	}
}
