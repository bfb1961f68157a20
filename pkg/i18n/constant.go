package i18n

const (
	ERROR_INTERNAL             = "error.internal"
	ERROR_NOT_FOUND            = "error.notfound"
	ERROR_INVALIDARGUMENT      = "error.invalidargument"
	ERROR_EXIST                = "error.exist"
	ERROR_TOO_MANY_REQUESTS    = "error.tooManyRequests"
	ERROR_SCOPE_NOT_FOUND      = "error.scope.notfound"
	ERROR_UNSUPPORTED_FILE     = "error.unsupported.filetype"
	ERROR_EXTRACTION_FAILED    = "error.extraction.failed"
	ERROR_PROVIDER_UNAVAILABLE = "error.provider.unavailable"
	ERROR_PROVIDER_REJECTED    = "error.provider.rejected"
	ERROR_DIMENSION_MISMATCH   = "error.vector.dimension"
	ERROR_STORAGE              = "error.storage"
)

const DEFAULT_LANG = "en"

var ALLOW_LANG = map[string]bool{
	"en":    true,
	"zh-CN": true,
}
