//go:build !race

package credentials

func passwordHashCost() int {
	return DefaultBcryptCost
}
