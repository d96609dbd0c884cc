/* utils.go
 * Utility functions used across the application
 */

package main

import (
	"fmt"
	"strings"
)

// convertStrToBool converts a "true"/"false" flag value into a boolean
// Preconditions: receives a string containing true or false (case insensitive)
// Postconditions: returns the boolean value, or an error for anything else
func convertStrToBool(str string) (bool, error) {
	str = strings.TrimSpace(str)
	str = strings.ToLower(str)

	if str == "true" {
		return true, nil
	} else if str == "false" {
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean string")
}
