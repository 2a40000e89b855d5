package api

import "fmt"

// StatusPhrase resolves the human phrase for the status codes the LesVieux
// API emits. The table is deliberately closed: any other code reaching this
// function means a misconfigured deployment or a programming error, and the
// portal fails loudly instead of inventing a phrase.
func StatusPhrase(code int) string {
	switch code {
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	case 409:
		return "Conflict"
	case 500:
		return "Internal Server Error"
	default:
		panic(fmt.Sprintf("unexpected status code: %d", code))
	}
}
