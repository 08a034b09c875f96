package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"vidhub-go/internal/config"
	"vidhub-go/internal/feed"
	"vidhub-go/internal/model"

	"gorm.io/gorm"
)

func setupConfig() {
	config.Set(&config.Config{
		App: config.AppConfig{Name: "vidhub-test"},
		JWT: config.JWTConfig{
			AccessSecret:       "access-secret",
			AccessExpireHours:  1,
			RefreshSecret:      "refresh-secret",
			RefreshExpireHours: 2,
		},
	})
}

type likeKey struct {
	owner  int64
	target model.LikeTarget
	id     int64
}

// memStore 内存版存储，返回值均为副本
type memStore struct {
	mu       sync.Mutex
	seq      int64
	users    map[int64]model.User
	videos   map[int64]model.Video
	comments map[int64]model.Comment
	tweets   map[int64]model.Tweet
	likes    map[likeKey]int64
	subs     map[[2]int64]int64
	history  map[int64][]int64
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int64]model.User{},
		videos:   map[int64]model.Video{},
		comments: map[int64]model.Comment{},
		tweets:   map[int64]model.Tweet{},
		likes:    map[likeKey]int64{},
		subs:     map[[2]int64]int64{},
		history:  map[int64][]int64{},
	}
}

func (m *memStore) next() int64 {
	m.seq++
	return m.seq
}

func (m *memStore) owner(id int64) *model.User {
	u, ok := m.users[id]
	if !ok {
		return nil
	}
	return &u
}

func paginate[T any](items []T, opts feed.Options) feed.Page[T] {
	opts = opts.Normalize()
	total := int64(len(items))
	start := opts.Offset()
	if start > len(items) {
		start = len(items)
	}
	end := start + opts.Limit
	if end > len(items) {
		end = len(items)
	}
	return feed.NewPage(items[start:end], total, opts.Page, opts.Limit)
}

// ---- users ----

type fakeUsers struct{ *memStore }

func (f fakeUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u := f.owner(id); u != nil {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f fakeUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == model.NormalizeUsername(username) {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f fakeUsers) GetByLogin(_ context.Context, username, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == model.NormalizeUsername(username) || u.Email == model.NormalizeEmail(email) {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f fakeUsers) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	_, err := f.GetByLogin(ctx, username, email)
	return err == nil, nil
}

func (f fakeUsers) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = f.next()
	user.CreatedAt, user.UpdatedAt = time.Now(), time.Now()
	f.users[user.ID] = *user
	return nil
}

func (f fakeUsers) Update(_ context.Context, id int64, updates map[string]interface{}) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for k, v := range updates {
		s, _ := v.(string)
		switch k {
		case "full_name":
			u.FullName = s
		case "email":
			for _, other := range f.users {
				if other.ID != id && other.Email == s {
					return nil, gorm.ErrDuplicatedKey
				}
			}
			u.Email = s
		case "password":
			u.Password = s
		case "avatar_url":
			u.Avatar.URL = s
		case "avatar_public_id":
			u.Avatar.PublicID = s
		case "cover_image_url":
			u.CoverImage.URL = s
		case "cover_image_public_id":
			u.CoverImage.PublicID = s
		}
	}
	f.users[id] = u
	return &u, nil
}

func (f fakeUsers) SetRefreshToken(_ context.Context, id int64, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.RefreshToken = token
	f.users[id] = u
	return nil
}

func (f fakeUsers) AppendWatchHistory(_ context.Context, userID, videoID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range f.history[userID] {
		if id == videoID {
			return nil
		}
	}
	f.history[userID] = append(f.history[userID], videoID)
	return nil
}

func (f fakeUsers) ListWatchHistory(_ context.Context, userID int64) ([]model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := f.history[userID]
	videos := make([]model.Video, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		if v, ok := f.videos[ids[i]]; ok {
			v.Owner = f.owner(v.OwnerID)
			videos = append(videos, v)
		}
	}
	return videos, nil
}

// ---- videos ----

type fakeVideos struct{ *memStore }

func (f fakeVideos) GetByID(_ context.Context, id int64) (*model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &v, nil
}

func (f fakeVideos) GetByIDWithOwner(ctx context.Context, id int64) (*model.Video, error) {
	v, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	v.Owner = f.owner(v.OwnerID)
	return v, nil
}

// visibleTo 已发布或属于 viewerID
func visibleTo(v model.Video, viewerID int64) bool {
	return v.IsPublished || v.OwnerID == viewerID
}

func (f fakeVideos) ExistsVisible(_ context.Context, id, viewerID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[id]
	return ok && visibleTo(v, viewerID), nil
}

func (f fakeVideos) Create(_ context.Context, video *model.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	video.ID = f.next()
	video.CreatedAt, video.UpdatedAt = time.Now(), time.Now()
	f.videos[video.ID] = *video
	return nil
}

func (f fakeVideos) Feed(_ context.Context, opts feed.Options) (feed.Page[model.Video], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var match map[int64]bool
	if opts.MatchIDs != nil {
		match = map[int64]bool{}
		for _, id := range opts.MatchIDs {
			match[id] = true
		}
	}
	var items []model.Video
	for _, v := range f.videos {
		switch {
		case match != nil && !match[v.ID]:
		case match == nil && opts.TextQuery != "" && !strings.Contains(v.Title+" "+v.Description, opts.TextQuery):
		case opts.OwnerID > 0 && v.OwnerID != opts.OwnerID:
		case opts.PublishedOnly && !v.IsPublished:
		default:
			v.Owner = f.owner(v.OwnerID)
			items = append(items, v)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return paginate(items, opts), nil
}

func (f fakeVideos) IncrementViews(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Views++
	f.videos[id] = v
	return nil
}

func (f fakeVideos) LatestByOwners(_ context.Context, ownerIDs []int64) (map[int64]model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := map[int64]model.Video{}
	for _, owner := range ownerIDs {
		for _, v := range f.videos {
			if v.OwnerID == owner && v.IsPublished && v.ID > result[owner].ID {
				result[owner] = v
			}
		}
	}
	return result, nil
}

func (f fakeVideos) UpdateOwned(_ context.Context, id, actorID int64, notFound error, mutate func(*model.Video) error, _ ...string) (*model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[id]
	if !ok {
		return nil, notFound
	}
	if err := model.AssertOwner(&v, actorID); err != nil {
		return nil, err
	}
	if err := mutate(&v); err != nil {
		return nil, err
	}
	f.videos[id] = v
	return &v, nil
}

func (f fakeVideos) DeleteOwned(_ context.Context, id, actorID int64, notFound error) (*model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[id]
	if !ok {
		return nil, notFound
	}
	if err := model.AssertOwner(&v, actorID); err != nil {
		return nil, err
	}
	for cid, c := range f.comments {
		if c.VideoID == id {
			f.dropLikes(model.LikeTargetComment, cid)
			delete(f.comments, cid)
		}
	}
	f.dropLikes(model.LikeTargetVideo, id)
	delete(f.videos, id)
	return &v, nil
}

func (m *memStore) dropLikes(target model.LikeTarget, id int64) {
	for k := range m.likes {
		if k.target == target && k.id == id {
			delete(m.likes, k)
		}
	}
}

// ---- comments ----

type fakeComments struct{ *memStore }

func (f fakeComments) Create(_ context.Context, c *model.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = f.next()
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	f.comments[c.ID] = *c
	return nil
}

func (f fakeComments) GetByIDWithOwner(_ context.Context, id int64) (*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c.Owner = f.owner(c.OwnerID)
	return &c, nil
}

func (f fakeComments) Exists(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.comments[id]
	return ok, nil
}

func (f fakeComments) FeedByVideo(_ context.Context, videoID int64, opts feed.Options) (feed.Page[model.Comment], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []model.Comment
	for _, c := range f.comments {
		if c.VideoID == videoID {
			c.Owner = f.owner(c.OwnerID)
			items = append(items, c)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return paginate(items, opts), nil
}

func (f fakeComments) UpdateContentOwned(_ context.Context, id, actorID int64, content string, notFound error) (*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[id]
	if !ok {
		return nil, notFound
	}
	if err := model.AssertOwner(&c, actorID); err != nil {
		return nil, err
	}
	c.Content = content
	f.comments[id] = c
	return &c, nil
}

func (f fakeComments) DeleteOwned(_ context.Context, id, actorID int64, notFound error) (*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[id]
	if !ok {
		return nil, notFound
	}
	if err := model.AssertOwner(&c, actorID); err != nil {
		return nil, err
	}
	f.dropLikes(model.LikeTargetComment, id)
	delete(f.comments, id)
	return &c, nil
}

// ---- tweets ----

type fakeTweets struct{ *memStore }

func (f fakeTweets) Create(_ context.Context, t *model.Tweet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = f.next()
	t.CreatedAt, t.UpdatedAt = time.Now(), time.Now()
	f.tweets[t.ID] = *t
	return nil
}

func (f fakeTweets) Exists(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.tweets[id]
	return ok, nil
}

func (f fakeTweets) Feed(_ context.Context, opts feed.Options) (feed.Page[model.Tweet], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []model.Tweet
	for _, t := range f.tweets {
		if opts.OwnerID > 0 && t.OwnerID != opts.OwnerID {
			continue
		}
		t.Owner = f.owner(t.OwnerID)
		items = append(items, t)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return paginate(items, opts), nil
}

func (f fakeTweets) UpdateContentOwned(_ context.Context, id, actorID int64, content string, notFound error) (*model.Tweet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tweets[id]
	if !ok {
		return nil, notFound
	}
	if err := model.AssertOwner(&t, actorID); err != nil {
		return nil, err
	}
	t.Content = content
	f.tweets[id] = t
	return &t, nil
}

func (f fakeTweets) DeleteOwned(_ context.Context, id, actorID int64, notFound error) (*model.Tweet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tweets[id]
	if !ok {
		return nil, notFound
	}
	if err := model.AssertOwner(&t, actorID); err != nil {
		return nil, err
	}
	f.dropLikes(model.LikeTargetTweet, id)
	delete(f.tweets, id)
	return &t, nil
}

// ---- likes ----

type fakeLikes struct{ *memStore }

func (f fakeLikes) Toggle(_ context.Context, ownerID int64, target model.LikeTarget, targetID int64) (bool, error) {
	if _, err := model.NewLike(ownerID, target, targetID); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	k := likeKey{ownerID, target, targetID}
	if _, ok := f.likes[k]; ok {
		delete(f.likes, k)
		return false, nil
	}
	f.likes[k] = f.next()
	return true, nil
}

func (f fakeLikes) Count(_ context.Context, target model.LikeTarget, targetID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k := range f.likes {
		if k.target == target && k.id == targetID {
			n++
		}
	}
	return n, nil
}

func (f fakeLikes) IsLiked(_ context.Context, viewerID int64, target model.LikeTarget, targetID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.likes[likeKey{viewerID, target, targetID}]
	return ok, nil
}

func (f fakeLikes) BatchCount(ctx context.Context, target model.LikeTarget, ids []int64) (map[int64]int64, error) {
	result := map[int64]int64{}
	for _, id := range ids {
		n, _ := f.Count(ctx, target, id)
		result[id] = n
	}
	return result, nil
}

func (f fakeLikes) BatchIsLiked(ctx context.Context, viewerID int64, target model.LikeTarget, ids []int64) (map[int64]bool, error) {
	result := map[int64]bool{}
	for _, id := range ids {
		result[id], _ = f.IsLiked(ctx, viewerID, target, id)
	}
	return result, nil
}

func (f fakeLikes) LikedVideos(_ context.Context, ownerID int64) ([]model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	type liked struct {
		seq   int64
		video model.Video
	}
	var rows []liked
	for k, seq := range f.likes {
		if k.owner == ownerID && k.target == model.LikeTargetVideo {
			if v, ok := f.videos[k.id]; ok && visibleTo(v, ownerID) {
				v.Owner = f.owner(v.OwnerID)
				rows = append(rows, liked{seq, v})
			}
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	videos := make([]model.Video, 0, len(rows))
	for _, r := range rows {
		videos = append(videos, r.video)
	}
	return videos, nil
}

// ---- subscriptions ----

type fakeSubs struct{ *memStore }

func (f fakeSubs) Toggle(_ context.Context, subscriberID, channelID int64) (bool, error) {
	if _, err := model.NewSubscription(subscriberID, channelID); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	k := [2]int64{subscriberID, channelID}
	if _, ok := f.subs[k]; ok {
		delete(f.subs, k)
		return false, nil
	}
	f.subs[k] = f.next()
	return true, nil
}

func (f fakeSubs) CountSubscribers(_ context.Context, channelID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k := range f.subs {
		if k[1] == channelID {
			n++
		}
	}
	return n, nil
}

func (f fakeSubs) CountSubscribedTo(_ context.Context, subscriberID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k := range f.subs {
		if k[0] == subscriberID {
			n++
		}
	}
	return n, nil
}

func (f fakeSubs) IsSubscribed(_ context.Context, viewerID, channelID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.subs[[2]int64{viewerID, channelID}]
	return ok, nil
}

func (f fakeSubs) BatchCountSubscribers(ctx context.Context, ids []int64) (map[int64]int64, error) {
	result := map[int64]int64{}
	for _, id := range ids {
		result[id], _ = f.CountSubscribers(ctx, id)
	}
	return result, nil
}

func (f fakeSubs) BatchIsSubscribed(ctx context.Context, subscriberID int64, ids []int64) (map[int64]bool, error) {
	result := map[int64]bool{}
	for _, id := range ids {
		result[id], _ = f.IsSubscribed(ctx, subscriberID, id)
	}
	return result, nil
}

func (f fakeSubs) list(match func(k [2]int64) (int64, bool)) []model.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	type row struct {
		seq  int64
		user model.User
	}
	var rows []row
	for k, seq := range f.subs {
		if id, ok := match(k); ok {
			rows = append(rows, row{seq, f.users[id]})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	users := make([]model.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, r.user)
	}
	return users
}

func (f fakeSubs) ListSubscribers(_ context.Context, channelID int64) ([]model.User, error) {
	return f.list(func(k [2]int64) (int64, bool) { return k[0], k[1] == channelID }), nil
}

func (f fakeSubs) ListChannels(_ context.Context, subscriberID int64) ([]model.User, error) {
	return f.list(func(k [2]int64) (int64, bool) { return k[1], k[0] == subscriberID }), nil
}

// ---- infra ----

type fakeDenylist struct {
	revoked map[string]time.Duration
}

func (d *fakeDenylist) Revoke(_ context.Context, id string, ttl time.Duration) error {
	if d.revoked == nil {
		d.revoked = map[string]time.Duration{}
	}
	d.revoked[id] = ttl
	return nil
}

func (d *fakeDenylist) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := d.revoked[id]
	return ok, nil
}

type recordedEvent struct {
	typ string
	id  int64
}

type fakePublisher struct{ events []recordedEvent }

func (p *fakePublisher) PublishVideoEvent(_ context.Context, typ string, id int64) error {
	p.events = append(p.events, recordedEvent{typ, id})
	return nil
}

// fakeSearcher 返回固定结果；saturate 时返回恰好 limit 个命中
type fakeSearcher struct {
	ids      []int64
	err      error
	saturate bool
}

func (s fakeSearcher) SearchVideoIDs(_ context.Context, _ string, limit int) ([]int64, error) {
	if s.saturate {
		ids := make([]int64, limit)
		for i := range ids {
			ids[i] = int64(i + 1)
		}
		return ids, nil
	}
	return s.ids, s.err
}

// seedUser 直接写入一个用户
func (m *memStore) seedUser(username string) model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := model.User{
		ID:       m.next(),
		Username: username,
		Email:    username + "@example.com",
		FullName: strings.ToUpper(username),
		Avatar:   model.MediaRef{URL: "http://cdn/" + username, PublicID: "images/" + username + ".png"},
	}
	m.users[u.ID] = u
	return u
}

func (m *memStore) seedVideo(ownerID int64, title string, published bool) model.Video {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := model.Video{
		ID:          m.next(),
		Title:       title,
		Description: title + " description",
		VideoFile:   model.MediaRef{URL: "http://cdn/v", PublicID: "videos/v.mp4"},
		Thumbnail:   model.MediaRef{URL: "http://cdn/t", PublicID: "images/t.png"},
		IsPublished: published,
		OwnerID:     ownerID,
		CreatedAt:   time.Now(),
	}
	m.videos[v.ID] = v
	return v
}
