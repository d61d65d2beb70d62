// Package service 提供业务逻辑层的实现
// 服务层封装具体的业务逻辑，协调 Repository 和 Cache
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"artfolio-server/internal/model"
	"artfolio-server/internal/repository"
)

// 计时器相关错误
var (
	ErrNoActiveSession      = errors.New("当前没有正在计时的会话")
	ErrAnotherSessionActive = errors.New("另一件作品上已有正在计时的会话")
	ErrArtworkRequired      = errors.New("缺少作品ID")
)

// TrackerService 创作计时服务
// 维护"每个用户同时至多一个活跃会话"的不变式，
// 所有会话变更都在单个事务内完成活跃会话的查找与写入，
// 避免重复点击等并发请求造成丢失更新
type TrackerService struct {
	db *gorm.DB
}

// NewTrackerService 创建 TrackerService 实例
// 直接持有 *gorm.DB 而不是 Repository：
// 会话变更必须把"读活跃会话 + 写"放进同一个事务作用域
func NewTrackerService(db *gorm.DB) *TrackerService {
	return &TrackerService{db: db}
}

// CurrentSessionResponse 当前会话快照
type CurrentSessionResponse struct {
	HasActive      bool  `json:"has_active"`                // 是否有活跃会话
	SessionID      int64 `json:"session_id,omitempty"`      // 会话ID
	ArtworkID      int64 `json:"artwork_id,omitempty"`      // 目标作品ID
	ElapsedSeconds int64 `json:"elapsed_seconds"`           // 当前总已计时秒数
	IsRunning      bool  `json:"is_running"`                // 正在计时还是暂停
	AutoPaused     bool  `json:"auto_paused,omitempty"`     // 是否因超过上限被强制暂停
}

// StopRequest 停止会话请求
type StopRequest struct {
	NoteContent           string  `json:"note_content"`            // 会话笔记文字，可空
	NotePhoto             *string `json:"note_photo"`              // 会话笔记照片路径，可空
	ManualDurationSeconds *int64  `json:"manual_duration_seconds"` // 手动修正的最终时长，可空
	AddToGallery          bool    `json:"add_to_gallery"`          // 是否把照片收录进作品画廊
}

// StopResponse 停止会话响应
type StopResponse struct {
	FinalizedDurationSeconds int64 `json:"finalized_duration_seconds"` // 最终入账的时长
}

// GetCurrent 获取用户当前会话的快照
// 如果正在计时的会话已超过单次上限（12 小时），会在这里被强制暂停并落库：
// 客户端可能合上电脑后几十个小时不再发请求，只有下一次读取才有机会纠正
// 失控的时长，所以超限检查放在读路径上
func (s *TrackerService) GetCurrent(ctx context.Context, userID int64) (*CurrentSessionResponse, error) {
	var resp *CurrentSessionResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sessions := repository.NewSessionRepository(tx)
		session, err := sessions.GetActiveByUser(ctx, userID)
		if err != nil {
			return err
		}
		if session == nil {
			resp = &CurrentSessionResponse{HasActive: false}
			return nil
		}

		snapshot, changed := buildSnapshot(session, time.Now())
		if changed {
			// 超限强制暂停需要持久化
			if err := sessions.Update(ctx, session); err != nil {
				return err
			}
		}
		resp = snapshot
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// buildSnapshot 根据会话行计算当前快照
// 正在计时时真实已计时间为 duration_seconds + (now - start_time)；
// 如果总时长超过上限，就把正在计时的区间截断到上限并转为暂停状态。
// 返回:
//   - *CurrentSessionResponse: 快照
//   - bool: 会话行是否被修改（需要调用方持久化）
func buildSnapshot(session *model.Session, now time.Time) (*CurrentSessionResponse, bool) {
	resp := &CurrentSessionResponse{
		HasActive: true,
		SessionID: session.ID,
		ArtworkID: session.ArtworkID,
	}

	if session.StartTime == nil {
		// 暂停中
		resp.ElapsedSeconds = session.DurationSeconds
		resp.IsRunning = false
		return resp, false
	}

	intervalSeconds := int64(now.Sub(*session.StartTime).Seconds())
	if intervalSeconds < 0 {
		intervalSeconds = 0
	}
	elapsed := session.DurationSeconds + intervalSeconds

	if elapsed > model.MaxSessionSeconds {
		// 强制暂停：正在计时的区间最多入账 12 小时
		if intervalSeconds > model.MaxSessionSeconds {
			intervalSeconds = model.MaxSessionSeconds
		}
		session.DurationSeconds += intervalSeconds
		session.StartTime = nil

		resp.ElapsedSeconds = session.DurationSeconds
		resp.IsRunning = false
		resp.AutoPaused = true
		return resp, true
	}

	resp.ElapsedSeconds = elapsed
	resp.IsRunning = true
	return resp, false
}

// Start 在指定作品上开始计时
// 业务规则:
//   - 整个账号同时只能有一个活跃会话，不是每件作品一个
//   - 同一作品上重复 start 是幂等的：暂停中则恢复，计时中则原样返回
//   - 其他作品上已有活跃会话时报冲突错误，让客户端提示用户
func (s *TrackerService) Start(ctx context.Context, userID, artworkID int64) (*CurrentSessionResponse, error) {
	if artworkID <= 0 {
		return nil, ErrArtworkRequired
	}

	var resp *CurrentSessionResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		artworks := repository.NewArtworkRepository(tx)
		artwork, err := artworks.GetByID(ctx, artworkID)
		if err != nil {
			return err
		}
		if artwork == nil || artwork.UserID != userID {
			return ErrArtworkNotFound
		}

		sessions := repository.NewSessionRepository(tx)
		session, err := sessions.GetActiveByUser(ctx, userID)
		if err != nil {
			return err
		}

		now := time.Now()
		switch {
		case session == nil:
			// 没有活跃会话，创建新的
			session = &model.Session{
				UserID:    userID,
				ArtworkID: artworkID,
				StartTime: &now,
			}
			if err := sessions.Create(ctx, session); err != nil {
				return err
			}

		case session.ArtworkID != artworkID:
			// 另一件作品上已有活跃会话
			return ErrAnotherSessionActive

		case session.StartTime == nil:
			// 同一作品、暂停中 -> 恢复计时
			session.StartTime = &now
			if err := sessions.Update(ctx, session); err != nil {
				return err
			}

			// 同一作品、已在计时 -> 幂等，不做任何修改
		}

		// 恢复一个累计时长已达上限的会话会被快照立即再次强制暂停，
		// 这个修改同样要落库，否则客户端看到的是暂停而数据库里还在计时
		var changed bool
		resp, changed = buildSnapshot(session, time.Now())
		if changed {
			if err := sessions.Update(ctx, session); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// TogglePause 暂停或恢复当前会话
// 计时中 -> 把已计时间冻结进 duration_seconds 并清空 start_time
// 暂停中 -> 重新把 start_time 置为当前时间
func (s *TrackerService) TogglePause(ctx context.Context, userID int64) (*CurrentSessionResponse, error) {
	var resp *CurrentSessionResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sessions := repository.NewSessionRepository(tx)
		session, err := sessions.GetActiveByUser(ctx, userID)
		if err != nil {
			return err
		}
		if session == nil {
			return ErrNoActiveSession
		}

		now := time.Now()
		if session.StartTime != nil {
			// 计时中 -> 暂停
			intervalSeconds := int64(now.Sub(*session.StartTime).Seconds())
			if intervalSeconds < 0 {
				intervalSeconds = 0
			}
			if intervalSeconds > model.MaxSessionSeconds {
				intervalSeconds = model.MaxSessionSeconds
			}
			session.DurationSeconds += intervalSeconds
			session.StartTime = nil
		} else {
			// 暂停中 -> 恢复
			session.StartTime = &now
		}

		if err := sessions.Update(ctx, session); err != nil {
			return err
		}

		// 同 Start：恢复后立即超限的会话被快照再次暂停，必须落库
		var changed bool
		resp, changed = buildSnapshot(session, now)
		if changed {
			if err := sessions.Update(ctx, session); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Stop 停止当前会话，会话成为不可变的历史记录
// 最终时长优先取客户端显式提交的修正值，否则取服务端计算的当前值。
// 如果提交了笔记文字或照片，在同一事务里创建唯一的一条会话笔记。
// 照片收录进作品画廊需要同时满足两个条件（显式 add_to_gallery 标记 +
// 画廊中不存在相同路径）：会话照片是过程记录，不该未经用户要求
// 污染作品的精选画廊
func (s *TrackerService) Stop(ctx context.Context, userID int64, req *StopRequest) (*StopResponse, error) {
	var resp *StopResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sessions := repository.NewSessionRepository(tx)
		session, err := sessions.GetActiveByUser(ctx, userID)
		if err != nil {
			return err
		}
		if session == nil {
			return ErrNoActiveSession
		}

		now := time.Now()

		// 计算最终时长
		var finalSeconds int64
		if req != nil && req.ManualDurationSeconds != nil && *req.ManualDurationSeconds >= 0 {
			finalSeconds = *req.ManualDurationSeconds
		} else {
			snapshot, _ := buildSnapshot(session, now)
			finalSeconds = snapshot.ElapsedSeconds
		}

		session.DurationSeconds = finalSeconds
		session.EndTime = &now
		if err := sessions.Update(ctx, session); err != nil {
			return err
		}

		if req != nil {
			content := strings.TrimSpace(req.NoteContent)
			hasPhoto := req.NotePhoto != nil && *req.NotePhoto != ""

			// 有内容或照片时创建会话笔记（历史记录，与画廊无关）
			if content != "" || hasPhoto {
				note := &model.Note{
					SessionID: session.ID,
					Content:   content,
				}
				if hasPhoto {
					note.PhotoURL = req.NotePhoto
				}
				if err := sessions.CreateNote(ctx, note); err != nil {
					return err
				}
			}

			// 画廊收录：显式标记 + 路径去重双重把关
			if hasPhoto && req.AddToGallery {
				artworks := repository.NewArtworkRepository(tx)
				exists, err := artworks.HasImageURL(ctx, session.ArtworkID, *req.NotePhoto)
				if err != nil {
					return err
				}
				if !exists {
					image := &model.ArtworkImage{
						ArtworkID: session.ArtworkID,
						URL:       *req.NotePhoto,
					}
					if err := artworks.AddImage(ctx, image); err != nil {
						return err
					}
				}
			}
		}

		resp = &StopResponse{FinalizedDurationSeconds: finalSeconds}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Discard 放弃当前会话
// 直接删除会话行，不留历史、不创建笔记。
// 没有活跃会话时什么也不做（幂等）：放弃一个不存在的会话不算错误
func (s *TrackerService) Discard(ctx context.Context, userID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sessions := repository.NewSessionRepository(tx)
		session, err := sessions.GetActiveByUser(ctx, userID)
		if err != nil {
			return err
		}
		if session == nil {
			return nil
		}
		return sessions.Delete(ctx, session.ID)
	})
}

// SessionHistoryItem 作品历史会话条目
type SessionHistoryItem struct {
	ID              int64       `json:"id"`
	StartedAt       string      `json:"started_at"`
	EndedAt         string      `json:"ended_at"`
	DurationSeconds int64       `json:"duration_seconds"`
	Note            *model.Note `json:"note,omitempty"`
}

// History 获取作品的历史会话列表
// 只包含已结束的会话，附带各自的笔记，最近的在前
func (s *TrackerService) History(ctx context.Context, userID, artworkID int64) ([]SessionHistoryItem, error) {
	artworks := repository.NewArtworkRepository(s.db)
	artwork, err := artworks.GetByID(ctx, artworkID)
	if err != nil {
		return nil, err
	}
	if artwork == nil || artwork.UserID != userID {
		return nil, ErrArtworkNotFound
	}

	sessions := repository.NewSessionRepository(s.db)
	finished, err := sessions.ListFinishedByArtwork(ctx, artworkID)
	if err != nil {
		return nil, err
	}

	items := make([]SessionHistoryItem, len(finished))
	for i, session := range finished {
		item := SessionHistoryItem{
			ID:              session.ID,
			StartedAt:       session.CreatedAt.Format(time.RFC3339),
			DurationSeconds: session.DurationSeconds,
			Note:            session.Note,
		}
		if session.EndTime != nil {
			item.EndedAt = session.EndTime.Format(time.RFC3339)
		}
		items[i] = item
	}
	return items, nil
}
