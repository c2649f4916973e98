package paceline

// RotationPosition returns the paceline position of the rider at roster
// index riderIndex while the rider at roster index pullingRiderIndex pulls.
// Position 0 is the front; the rider who just pulled sits at teamSize-1.
func RotationPosition(riderIndex, pullingRiderIndex, teamSize int) int {
	return ((riderIndex-pullingRiderIndex)%teamSize + teamSize) % teamSize
}
