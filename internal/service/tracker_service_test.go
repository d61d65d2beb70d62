package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"artfolio-server/internal/model"
)

// setupTestDB 创建内存 SQLite 数据库并迁移全部表
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Genre{},
		&model.Style{},
		&model.Material{},
		&model.Tag{},
		&model.Artwork{},
		&model.ArtworkImage{},
		&model.Session{},
		&model.Note{},
		&model.Collection{},
		&model.CollectionItem{},
		&model.StickyNote{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// createTestUser 插入一个测试用户
func createTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// createTestArtwork 插入一件测试作品
func createTestArtwork(t *testing.T, db *gorm.DB, userID int64, title string) *model.Artwork {
	t.Helper()
	artwork := &model.Artwork{UserID: userID, Title: title, Status: model.ArtworkStatusInProgress}
	if err := db.Create(artwork).Error; err != nil {
		t.Fatalf("create artwork: %v", err)
	}
	return artwork
}

func TestTrackerStartCreatesSession(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olena")
	artwork := createTestArtwork(t, db, user.ID, "ранковий етюд")
	svc := NewTrackerService(db)
	ctx := context.Background()

	snapshot, err := svc.Start(ctx, user.ID, artwork.ID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !snapshot.HasActive || !snapshot.IsRunning {
		t.Errorf("snapshot = %+v, want active running session", snapshot)
	}
	if snapshot.ArtworkID != artwork.ID {
		t.Errorf("ArtworkID = %d, want %d", snapshot.ArtworkID, artwork.ID)
	}
}

func TestTrackerStartMissingArtwork(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olena")
	svc := NewTrackerService(db)

	if _, err := svc.Start(context.Background(), user.ID, 0); !errors.Is(err, ErrArtworkRequired) {
		t.Errorf("err = %v, want ErrArtworkRequired", err)
	}
	if _, err := svc.Start(context.Background(), user.ID, 999); !errors.Is(err, ErrArtworkNotFound) {
		t.Errorf("err = %v, want ErrArtworkNotFound", err)
	}
}

func TestTrackerStartForeignArtwork(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")
	artwork := createTestArtwork(t, db, owner.ID, "чужа робота")
	svc := NewTrackerService(db)

	// 他人的作品等同于不存在，不能泄露其存在性
	if _, err := svc.Start(context.Background(), other.ID, artwork.ID); !errors.Is(err, ErrArtworkNotFound) {
		t.Errorf("err = %v, want ErrArtworkNotFound", err)
	}
}

func TestTrackerStartIdempotentOnSameArtwork(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olena")
	artwork := createTestArtwork(t, db, user.ID, "етюд")
	svc := NewTrackerService(db)
	ctx := context.Background()

	first, err := svc.Start(ctx, user.ID, artwork.ID)
	if err != nil {
		t.Fatalf("first Start: %v", err)
	}
	second, err := svc.Start(ctx, user.ID, artwork.ID)
	if err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if second.SessionID != first.SessionID {
		t.Errorf("second start created new session %d, want %d", second.SessionID, first.SessionID)
	}

	var count int64
	db.Model(&model.Session{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Errorf("session count = %d, want 1", count)
	}
}

func TestTrackerStartConflictOnAnotherArtwork(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olena")
	first := createTestArtwork(t, db, user.ID, "перша")
	second := createTestArtwork(t, db, user.ID, "друга")
	svc := NewTrackerService(db)
	ctx := context.Background()

	if _, err := svc.Start(ctx, user.ID, first.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.Start(ctx, user.ID, second.ID); !errors.Is(err, ErrAnotherSessionActive) {
		t.Errorf("err = %v, want ErrAnotherSessionActive", err)
	}
}

func TestTrackerPauseAndResume(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olena")
	artwork := createTestArtwork(t, db, user.ID, "етюд")
	svc := NewTrackerService(db)
	ctx := context.Background()

	if _, err := svc.Start(ctx, user.ID, artwork.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}

	paused, err := svc.TogglePause(ctx, user.ID)
	if err != nil {
		t.Fatalf("TogglePause: %v", err)
	}
	if paused.IsRunning {
		t.Error("IsRunning = true after pause, want false")
	}

	// 暂停状态必须落库：start_time 为 NULL
	var session model.Session
	if err := db.Where("user_id = ? AND end_time IS NULL", user.ID).First(&session).Error; err != nil {
		t.Fatalf("load session: %v", err)
	}
	if session.StartTime != nil {
		t.Error("StartTime persisted non-nil after pause")
	}

	resumed, err := svc.TogglePause(ctx, user.ID)
	if err != nil {
		t.Fatalf("TogglePause resume: %v", err)
	}
	if !resumed.IsRunning {
		t.Error("IsRunning = false after resume, want true")
	}

	// 用 start 恢复暂停中的会话也必须有效
	if _, err := svc.TogglePause(ctx, user.ID); err != nil {
		t.Fatalf("pause again: %v", err)
	}
	viaStart, err := svc.Start(ctx, user.ID, artwork.ID)
	if err != nil {
		t.Fatalf("Start resume: %v", err)
	}
	if !viaStart.IsRunning {
		t.Error("Start did not resume paused session")
	}
}

func TestTrackerPauseWithoutActiveSession(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olena")
	svc := NewTrackerService(db)

	if _, err := svc.TogglePause(context.Background(), user.ID); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("err = %v, want ErrNoActiveSession", err)
	}
}

func TestTrackerAutoPauseOnRead(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olena")
	artwork := createTestArtwork(t, db, user.ID, "марафон")
	svc := NewTrackerService(db)
	ctx := context.Background()

	// 直接插入一条 13 小时前开始计时的活跃会话
	startedAt := time.Now().Add(-13 * time.Hour)
	session := &model.Session{UserID: user.ID, ArtworkID: artwork.ID, StartTime: &startedAt}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}

	snapshot, err := svc.GetCurrent(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetCurrent: %v", err)
	}
	if !snapshot.AutoPaused {
		t.Error("AutoPaused = false, want true")
	}
	if snapshot.IsRunning {
		t.Error("IsRunning = true after auto pause")
	}
	if snapshot.ElapsedSeconds != model.MaxSessionSeconds {
		t.Errorf("ElapsedSeconds = %d, want %d", snapshot.ElapsedSeconds, model.MaxSessionSeconds)
	}

	// 强制暂停必须已持久化
	var stored model.Session
	if err := db.First(&stored, session.ID).Error; err != nil {
		t.Fatalf("load session: %v", err)
	}
	if stored.StartTime != nil {
		t.Error("StartTime not cleared in storage")
	}
	if stored.DurationSeconds != model.MaxSessionSeconds {
		t.Errorf("DurationSeconds = %d, want %d", stored.DurationSeconds, model.MaxSessionSeconds)
	}
}

func TestTrackerResumeOfMaxedSessionStaysPaused(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olena")
	artwork := createTestArtwork(t, db, user.ID, "марафон")
	svc := NewTrackerService(db)
	ctx := context.Background()

	// 暂停中的会话，累计时长已超过上限
	session := &model.Session{
		UserID:          user.ID,
		ArtworkID:       artwork.ID,
		DurationSeconds: model.MaxSessionSeconds + 100,
	}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}

	snapshot, err := svc.TogglePause(ctx, user.ID)
	if err != nil {
		t.Fatalf("TogglePause: %v", err)
	}
	if snapshot.IsRunning {
		t.Error("IsRunning = true, want false")
	}
	if !snapshot.AutoPaused {
		t.Error("AutoPaused = false, want true")
	}

	// 快照与落库状态必须一致：数据库里不能还在计时
	var stored model.Session
	if err := db.First(&stored, session.ID).Error; err != nil {
		t.Fatalf("load session: %v", err)
	}
	if stored.StartTime != nil {
		t.Error("StartTime persisted non-nil, session still accruing in storage")
	}
	if stored.DurationSeconds != session.DurationSeconds {
		t.Errorf("DurationSeconds = %d, want %d", stored.DurationSeconds, session.DurationSeconds)
	}
}

func TestTrackerStartResumeOfMaxedSessionStaysPaused(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olena")
	artwork := createTestArtwork(t, db, user.ID, "марафон")
	svc := NewTrackerService(db)
	ctx := context.Background()

	session := &model.Session{
		UserID:          user.ID,
		ArtworkID:       artwork.ID,
		DurationSeconds: model.MaxSessionSeconds + 100,
	}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}

	// 通过 start 恢复同一作品的暂停会话，同样不能越过上限
	snapshot, err := svc.Start(ctx, user.ID, artwork.ID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if snapshot.IsRunning {
		t.Error("IsRunning = true, want false")
	}
	if !snapshot.AutoPaused {
		t.Error("AutoPaused = false, want true")
	}

	var stored model.Session
	if err := db.First(&stored, session.ID).Error; err != nil {
		t.Fatalf("load session: %v", err)
	}
	if stored.StartTime != nil {
		t.Error("StartTime persisted non-nil, session still accruing in storage")
	}
}

func TestTrackerGetCurrentWithoutSession(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olena")
	svc := NewTrackerService(db)

	snapshot, err := svc.GetCurrent(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetCurrent: %v", err)
	}
	if snapshot.HasActive {
		t.Error("HasActive = true, want false")
	}
}

func TestTrackerStopFinalizesSession(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olena")
	artwork := createTestArtwork(t, db, user.ID, "етюд")
	svc := NewTrackerService(db)
	ctx := context.Background()

	if _, err := svc.Start(ctx, user.ID, artwork.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}

	result, err := svc.Stop(ctx, user.ID, &StopRequest{})
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if result.FinalizedDurationSeconds < 0 {
		t.Errorf("FinalizedDurationSeconds = %d", result.FinalizedDurationSeconds)
	}

	// 停止后没有活跃会话
	snapshot, err := svc.GetCurrent(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetCurrent: %v", err)
	}
	if snapshot.HasActive {
		t.Error("session still active after stop")
	}
}

func TestTrackerStopManualDuration(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olena")
	artwork := createTestArtwork(t, db, user.ID, "етюд")
	svc := NewTrackerService(db)
	ctx := context.Background()

	if _, err := svc.Start(ctx, user.ID, artwork.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}

	manual := int64(1800)
	result, err := svc.Stop(ctx, user.ID, &StopRequest{ManualDurationSeconds: &manual})
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if result.FinalizedDurationSeconds != manual {
		t.Errorf("FinalizedDurationSeconds = %d, want %d", result.FinalizedDurationSeconds, manual)
	}

	var session model.Session
	if err := db.Where("user_id = ?", user.ID).First(&session).Error; err != nil {
		t.Fatalf("load session: %v", err)
	}
	if session.DurationSeconds != manual {
		t.Errorf("stored DurationSeconds = %d, want %d", session.DurationSeconds, manual)
	}
	if session.EndTime == nil {
		t.Error("EndTime is nil after stop")
	}
}

func TestTrackerStopCreatesNote(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olena")
	artwork := createTestArtwork(t, db, user.ID, "етюд")
	svc := NewTrackerService(db)
	ctx := context.Background()

	if _, err := svc.Start(ctx, user.ID, artwork.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}

	photo := "/uploads/abc.jpg"
	if _, err := svc.Stop(ctx, user.ID, &StopRequest{
		NoteContent: "  промальовано фон  ",
		NotePhoto:   &photo,
	}); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	var note model.Note
	if err := db.First(&note).Error; err != nil {
		t.Fatalf("load note: %v", err)
	}
	if note.Content != "промальовано фон" {
		t.Errorf("Content = %q, want trimmed text", note.Content)
	}
	if note.PhotoURL == nil || *note.PhotoURL != photo {
		t.Errorf("PhotoURL = %v, want %q", note.PhotoURL, photo)
	}

	// 没有 add_to_gallery 标记，照片不得进入画廊
	var imageCount int64
	db.Model(&model.ArtworkImage{}).Where("artwork_id = ?", artwork.ID).Count(&imageCount)
	if imageCount != 0 {
		t.Errorf("gallery image count = %d, want 0", imageCount)
	}
}

func TestTrackerStopWithoutNoteContent(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olena")
	artwork := createTestArtwork(t, db, user.ID, "етюд")
	svc := NewTrackerService(db)
	ctx := context.Background()

	if _, err := svc.Start(ctx, user.ID, artwork.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}
	// 只有空白字符的笔记不创建
	if _, err := svc.Stop(ctx, user.ID, &StopRequest{NoteContent: "   "}); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	var count int64
	db.Model(&model.Note{}).Count(&count)
	if count != 0 {
		t.Errorf("note count = %d, want 0", count)
	}
}

func TestTrackerStopGalleryGating(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olena")
	artwork := createTestArtwork(t, db, user.ID, "етюд")
	svc := NewTrackerService(db)
	ctx := context.Background()

	photo := "/uploads/etude.jpg"

	// 第一次：显式收录，照片进入画廊
	if _, err := svc.Start(ctx, user.ID, artwork.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.Stop(ctx, user.ID, &StopRequest{NotePhoto: &photo, AddToGallery: true}); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	var count int64
	db.Model(&model.ArtworkImage{}).Where("artwork_id = ?", artwork.ID).Count(&count)
	if count != 1 {
		t.Fatalf("gallery image count = %d, want 1", count)
	}

	// 第二次：同一路径再次收录，按路径去重不重复添加
	if _, err := svc.Start(ctx, user.ID, artwork.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.Stop(ctx, user.ID, &StopRequest{NotePhoto: &photo, AddToGallery: true}); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	db.Model(&model.ArtworkImage{}).Where("artwork_id = ?", artwork.ID).Count(&count)
	if count != 1 {
		t.Errorf("gallery image count after duplicate = %d, want 1", count)
	}
}

func TestTrackerStopWithoutActiveSession(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olena")
	svc := NewTrackerService(db)

	if _, err := svc.Stop(context.Background(), user.ID, &StopRequest{}); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("err = %v, want ErrNoActiveSession", err)
	}
}

func TestTrackerDiscardIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olena")
	artwork := createTestArtwork(t, db, user.ID, "етюд")
	svc := NewTrackerService(db)
	ctx := context.Background()

	if _, err := svc.Start(ctx, user.ID, artwork.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := svc.Discard(ctx, user.ID); err != nil {
		t.Fatalf("Discard: %v", err)
	}

	var count int64
	db.Model(&model.Session{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Errorf("session count = %d, want 0", count)
	}

	// 没有活跃会话时放弃也不是错误
	if err := svc.Discard(ctx, user.ID); err != nil {
		t.Errorf("second Discard: %v", err)
	}
}
