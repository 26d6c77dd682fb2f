package domain

// MirrorStatus итог зеркалирования записи во внешний календарь
type MirrorStatus string

const (
	MirrorMirrored MirrorStatus = "mirrored"
	MirrorFailed   MirrorStatus = "failed"
	MirrorSkipped  MirrorStatus = "skipped"
)

// MirrorResult результат зеркалирования. Локальная запись при этом уже сохранена
type MirrorResult struct {
	Status    MirrorStatus
	Code      ReasonCode // MIRROR_FAILED при Status == MirrorFailed
	EventID   string
	EventLink string
}
