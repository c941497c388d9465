package domain

// ActivityKind — тип события активности пользователя.
type ActivityKind string

const (
	ActivityPhotoUploaded ActivityKind = "photo_uploaded"
	ActivityCommentAdded  ActivityKind = "comment_added"
)
