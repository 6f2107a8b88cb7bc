package migrate

// Stage identifies one step of the per-file pipeline.
type Stage string

const (
	StageDownload Stage = "download"
	StageUpload   Stage = "upload"
	StageArchive  Stage = "archive"
)

// ItemState is the per-file state machine:
//
//	Queued -> Downloading -> Uploading -> Archiving -> Succeeded
//	              |              |            |
//	              v              v            v
//	           Failed(download) Failed(upload) Failed(archive)
type ItemState string

const (
	ItemQueued      ItemState = "queued"
	ItemDownloading ItemState = "downloading"
	ItemUploading   ItemState = "uploading"
	ItemArchiving   ItemState = "archiving"
	ItemSucceeded   ItemState = "succeeded"
	ItemFailed      ItemState = "failed"
)

func stageState(stage Stage) ItemState {
	switch stage {
	case StageDownload:
		return ItemDownloading
	case StageUpload:
		return ItemUploading
	case StageArchive:
		return ItemArchiving
	}
	return ItemQueued
}
