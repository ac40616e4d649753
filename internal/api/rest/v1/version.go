package v1

// BasePath is the prefix of every JSON route of this API version
const BasePath = "/api/v1"
