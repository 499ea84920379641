package i18n

var ALLOW_LANG = map[string]bool{
	"en":    true,
	"zh-CN": true,
}

const DEFAULT_LANG = "en"

const (
	ERROR_INTERNAL          = "error.internal"
	ERROR_NOT_FOUND         = "error.notfound"
	ERROR_INVALIDARGUMENT   = "error.invalidargument"
	ERROR_TOO_MANY_REQUESTS = "error.tooManyRequests"

	ERROR_ENTRY_CONTENT_EMPTY     = "error.entry.content.empty"
	ERROR_ENTRY_LOCATION_EMPTY    = "error.entry.location.empty"
	ERROR_ENTRY_COMPLETED_MISSING = "error.entry.completed.missing"
	ERROR_ENTRY_TAGS_MISSING      = "error.entry.tags.missing"
	ERROR_ENTRY_ID_NOT_FOUND      = "error.entry.id.notfound"
)
