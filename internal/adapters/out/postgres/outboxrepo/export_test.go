package outboxrepo

const MaxErrorLength = maxErrorLength

var TruncateError = truncateError
