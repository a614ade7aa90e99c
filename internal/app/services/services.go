package services

// Services defined in this package:
// - RegistrationService: creates student + guardian + initial enrollment atomically
// - AllocationService: assigns/releases grade seats under the capacity invariant
// - GradeService: grade section catalog lifecycle
// - AuthService: staff login
//
// All of them speak to the database through the store contracts in stores.go,
// never through a shared ambient connection.
