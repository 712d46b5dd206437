package dispatcher

import "liftsim/src/elev"

// floorDistance is the cost of sending a stopped car to the calling floor:
// the number of floor numbers between them.
func floorDistance(status elev.CarStatus, callingFloor int) int {
	return abs(status.Floor.Number - callingFloor)
}

// findAssignee returns the index of the nearest stopped car, or -1 when every
// car is moving. Ties go to the earlier car.
func findAssignee(statuses []elev.CarStatus, callingFloor int) int {
	assignee := -1
	lowestCost := 0
	for i, status := range statuses {
		if !status.IsStopped() {
			continue
		}
		cost := floorDistance(status, callingFloor)
		if assignee == -1 || cost < lowestCost {
			lowestCost = cost
			assignee = i
		}
	}
	return assignee
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
