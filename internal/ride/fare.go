package ride

// FarePerPerson splits the total fare across the participants' seats plus
// the host's implicit share, rounding up. The divisor is seats+1 because
// the host occupies one share that is never listed in Participants.
// Exact integer arithmetic, no floating point.
func FarePerPerson(totalFare, seats int) int {
	return (totalFare + seats) / (seats + 1)
}

// Savings is what a participant keeps compared to paying the full fare alone
func Savings(totalFare, seats int) int {
	return totalFare - FarePerPerson(totalFare, seats)
}
