package auth

const HOME = "UserProfile"
