package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionActive      ErrCode = "SESSION_ALREADY_ACTIVE"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrRoleDenied        ErrCode = "ROLE_DENIED"
	ErrStudentAccessOnly ErrCode = "STUDENT_ACCESS_ONLY"
	ErrStaffAccessOnly   ErrCode = "STAFF_ACCESS_ONLY"
	ErrWrongAcademy      ErrCode = "WRONG_ACADEMY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"

	// ─── Test-specific ─────────────────────────────────────────────────
	ErrWordbookEmpty    ErrCode = "WORDBOOK_EMPTY"
	ErrNotWordbookOwner ErrCode = "NOT_WORDBOOK_OWNER"
	ErrNoAnswers        ErrCode = "NO_ANSWERS"

	// ─── Upload / Import ───────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"
	ErrImportFailed    ErrCode = "IMPORT_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "아이디 또는 비밀번호가 올바르지 않습니다."
	case ErrSessionActive:
		return "다른 기기에서 이미 로그인되어 있습니다."
	case ErrSessionInvalidated:
		return "세션이 만료되었습니다. 다시 로그인해 주세요."
	case ErrTokenRequired:
		return "인증 토큰이 필요합니다."
	case ErrTokenInvalid:
		return "인증 토큰이 유효하지 않습니다."
	case ErrTokenExpired:
		return "인증 토큰이 만료되었습니다."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "이 리소스에 접근할 권한이 없습니다."
	case ErrRoleDenied:
		return "해당 역할로는 수행할 수 없는 작업입니다."
	case ErrStudentAccessOnly:
		return "학생 전용 리소스입니다."
	case ErrStaffAccessOnly:
		return "관리자/교사 전용 리소스입니다."
	case ErrWrongAcademy:
		return "다른 학원의 데이터에는 접근할 수 없습니다."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "입력값 검증에 실패했습니다. 입력 내용을 확인해 주세요."
	case ErrInvalidID:
		return "ID 형식이 올바르지 않습니다."
	case ErrInvalidPayload:
		return "요청 본문이 올바르지 않습니다."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "리소스를 찾을 수 없습니다."
	case ErrConflict:
		return "이미 존재하는 리소스입니다."
	case ErrDependencyExists:
		return "다른 데이터에서 사용 중이므로 삭제할 수 없습니다."

	// ─── Test-specific ─────────────────────────────────────────────────
	case ErrWordbookEmpty:
		return "이 단어장에는 단어가 없습니다."
	case ErrNotWordbookOwner:
		return "이 단어장의 작성자가 아닙니다."
	case ErrNoAnswers:
		return "제출된 답안이 없습니다."

	// ─── Upload / Import ───────────────────────────────────────────────
	case ErrFileRequired:
		return "파일 업로드가 필요합니다."
	case ErrUnsupportedFile:
		return "지원하지 않는 파일 형식입니다."
	case ErrFileTooLarge:
		return "파일 크기가 제한을 초과했습니다."
	case ErrImportFailed:
		return "엑셀 파일을 처리하지 못했습니다."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "요청이 너무 많습니다. 잠시 후 다시 시도해 주세요."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "서버 내부 오류가 발생했습니다."
	default:
		return "예기치 못한 오류가 발생했습니다."
	}
}
