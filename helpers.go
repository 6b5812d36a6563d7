package main

func contains[T comparable](l []T, item T) bool {
	for _, element := range l {
		if element == item {
			return true
		}
	}
	return false
}

func remove[T comparable](l []T, item T) []T {
	out := make([]T, 0, len(l))
	for _, element := range l {
		if element != item {
			out = append(out, element)
		}
	}
	return out
}
