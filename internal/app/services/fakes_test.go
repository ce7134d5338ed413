package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/akwareg/akwareg-backend/internal/app/models"
	"github.com/akwareg/akwareg-backend/internal/app/repositories"
	"github.com/akwareg/akwareg-backend/internal/pkg/apperrors"
)

// In-memory store fakes shared by the service tests.

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}, nextID: 1}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return nil, apperrors.ErrEmailAlreadyExists
		}
	}
	stored := *user
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.users[stored.ID] = &stored
	f.nextID++
	return &stored, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copy := *user
			return &copy, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copy := *user
	return &copy, nil
}

func (f *fakeUserStore) ListUsers(_ context.Context, query, role string, offset uint64, limit int) ([]models.User, int64, error) {
	var matched []models.User
	for id := int64(1); id < f.nextID; id++ {
		user, ok := f.users[id]
		if !ok {
			continue
		}
		if role != "" && string(user.Role) != role {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(user.FullName+user.Email), strings.ToLower(query)) {
			continue
		}
		matched = append(matched, *user)
	}
	return matched, int64(len(matched)), nil
}

func (f *fakeUserStore) SetUserVerified(_ context.Context, id int64, verified bool) error {
	user, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.IsVerified = verified
	return nil
}

type storedToken struct {
	userID  int64
	expiry  time.Time
	revoked bool
}

type fakeTokenStore struct {
	tokens map[string]*storedToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]*storedToken{}}
}

func (f *fakeTokenStore) CreateToken(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	f.tokens[token] = &storedToken{userID: userID, expiry: expiryDate}
	return nil
}

func (f *fakeTokenStore) GetTokenUserID(_ context.Context, token string) (int64, error) {
	stored, ok := f.tokens[token]
	if !ok {
		return 0, apperrors.ErrTokenNotFound
	}
	if stored.revoked {
		return 0, apperrors.ErrTokenRevoked
	}
	if time.Now().After(stored.expiry) {
		return 0, apperrors.ErrTokenExpired
	}
	return stored.userID, nil
}

func (f *fakeTokenStore) RevokeToken(_ context.Context, token string) error {
	stored, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	stored.revoked = true
	return nil
}

func asInt64Ptr(value interface{}) *int64 {
	switch v := value.(type) {
	case int64:
		return &v
	case *int64:
		return v
	default:
		return nil
	}
}

type fakePropertyStore struct {
	properties map[int64]*models.Property
	nextID     int64
}

func newFakePropertyStore() *fakePropertyStore {
	return &fakePropertyStore{properties: map[int64]*models.Property{}, nextID: 1}
}

func (f *fakePropertyStore) add(p models.Property) *models.Property {
	p.ID = f.nextID
	if p.Images == nil {
		p.Images = []string{}
	}
	p.CreatedAt = time.Now()
	f.properties[p.ID] = &p
	f.nextID++
	return f.properties[p.ID]
}

func (f *fakePropertyStore) CreateProperty(_ context.Context, p *models.Property) (*models.Property, error) {
	stored := f.add(*p)
	copy := *stored
	return &copy, nil
}

func (f *fakePropertyStore) GetPropertyByID(_ context.Context, id int64) (*models.Property, error) {
	p, ok := f.properties[id]
	if !ok {
		return nil, apperrors.ErrPropertyNotFound
	}
	copy := *p
	return &copy, nil
}

func (f *fakePropertyStore) SearchProperties(_ context.Context, filters repositories.PropertySearchFilters) ([]models.Property, int64, error) {
	var matched []models.Property
	for id := int64(1); id < f.nextID; id++ {
		p, ok := f.properties[id]
		if !ok {
			continue
		}
		if filters.Status != "" && string(p.Status) != filters.Status {
			continue
		}
		if filters.OwnerID != nil && p.OwnerID != *filters.OwnerID {
			continue
		}
		if filters.PropertyType != "" && string(p.PropertyType) != filters.PropertyType {
			continue
		}
		if filters.LGA != "" && p.LGA != filters.LGA {
			continue
		}
		if filters.ForSale != nil && p.IsForSale != *filters.ForSale {
			continue
		}
		if filters.ForLease != nil && p.IsForLease != *filters.ForLease {
			continue
		}
		if filters.MinPrice != nil && (p.Price == nil || *p.Price < *filters.MinPrice) {
			continue
		}
		if filters.MaxPrice != nil && (p.Price == nil || *p.Price > *filters.MaxPrice) {
			continue
		}
		switch filters.View {
		case "listed":
			if !p.IsListed() {
				continue
			}
		case "registered":
			if p.IsListed() {
				continue
			}
		case "sold":
			if p.AvailabilityStatus == nil || *p.AvailabilityStatus != models.AvailabilitySold {
				continue
			}
		}
		matched = append(matched, *p)
	}
	return matched, int64(len(matched)), nil
}

func (f *fakePropertyStore) UpdatePropertyFields(_ context.Context, id int64, fields map[string]interface{}) error {
	p, ok := f.properties[id]
	if !ok {
		return apperrors.ErrPropertyNotFound
	}
	for key, value := range fields {
		switch key {
		case "title":
			p.Title = value.(string)
		case "description":
			p.Description = value.(string)
		case "address":
			p.Address = value.(string)
		case "lga":
			p.LGA = value.(string)
		case "state":
			p.State = value.(string)
		case "size_sqm":
			p.SizeSqm = value.(float64)
		case "is_for_sale":
			p.IsForSale = value.(bool)
		case "is_for_lease":
			p.IsForLease = value.(bool)
		case "price":
			p.Price = asInt64Ptr(value)
		case "lease_price_annual":
			p.LeasePriceAnnual = asInt64Ptr(value)
		}
	}
	return nil
}

func (f *fakePropertyStore) AppendImages(_ context.Context, id int64, urls []string) error {
	p, ok := f.properties[id]
	if !ok {
		return apperrors.ErrPropertyNotFound
	}
	p.Images = append(p.Images, urls...)
	return nil
}

func (f *fakePropertyStore) TransitionStatus(_ context.Context, id int64, from, to models.PropertyStatus, verifiedBy *int64, notes *string) error {
	p, ok := f.properties[id]
	if !ok {
		return apperrors.ErrPropertyNotFound
	}
	if p.Status != from {
		return apperrors.ErrInvalidTransition
	}
	p.Status = to
	if to == models.StatusApproved || to == models.StatusRejected {
		now := time.Now()
		p.VerifiedBy = verifiedBy
		p.VerifiedAt = &now
		p.VerificationNotes = notes
	}
	return nil
}

type fakeDocumentStore struct {
	documents map[int64]*models.PropertyDocument
	nextID    int64
}

func newFakeDocumentStore() *fakeDocumentStore {
	return &fakeDocumentStore{documents: map[int64]*models.PropertyDocument{}, nextID: 1}
}

func (f *fakeDocumentStore) CreateDocument(_ context.Context, d *models.PropertyDocument) (*models.PropertyDocument, error) {
	stored := *d
	stored.ID = f.nextID
	stored.UploadedAt = time.Now()
	f.documents[stored.ID] = &stored
	f.nextID++
	copy := stored
	return &copy, nil
}

func (f *fakeDocumentStore) GetDocumentByID(_ context.Context, id int64) (*models.PropertyDocument, error) {
	d, ok := f.documents[id]
	if !ok {
		return nil, apperrors.ErrDocumentNotFound
	}
	copy := *d
	return &copy, nil
}

func (f *fakeDocumentStore) DeleteDocument(_ context.Context, id int64) error {
	if _, ok := f.documents[id]; !ok {
		return apperrors.ErrDocumentNotFound
	}
	delete(f.documents, id)
	return nil
}

type fakeUpdateRequestStore struct {
	properties *fakePropertyStore
	requests   map[int64]*models.UpdateRequest
	nextID     int64
}

func newFakeUpdateRequestStore(properties *fakePropertyStore) *fakeUpdateRequestStore {
	return &fakeUpdateRequestStore{
		properties: properties,
		requests:   map[int64]*models.UpdateRequest{},
		nextID:     1,
	}
}

func (f *fakeUpdateRequestStore) CreateReplacingPending(_ context.Context, req *models.UpdateRequest) (*models.UpdateRequest, error) {
	for id, existing := range f.requests {
		if existing.PropertyID == req.PropertyID && existing.Pending() {
			delete(f.requests, id)
		}
	}
	stored := *req
	stored.ID = f.nextID
	stored.RequestedAt = time.Now()
	f.requests[stored.ID] = &stored
	f.nextID++
	copy := stored
	return &copy, nil
}

func (f *fakeUpdateRequestStore) ListPending(_ context.Context, offset uint64, limit int) ([]repositories.PendingRequest, int64, error) {
	var pending []repositories.PendingRequest
	for id := int64(1); id < f.nextID; id++ {
		req, ok := f.requests[id]
		if !ok || !req.Pending() {
			continue
		}
		item := repositories.PendingRequest{Request: *req}
		if p, ok := f.properties.properties[req.PropertyID]; ok {
			item.PropertyTitle = p.Title
		}
		pending = append(pending, item)
	}
	return pending, int64(len(pending)), nil
}

func (f *fakeUpdateRequestStore) resolve(id, resolvedBy int64, approved bool, notes string) (*models.UpdateRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, apperrors.ErrUpdateRequestNotFound
	}
	if !req.Pending() {
		return nil, apperrors.ErrUpdateRequestResolved
	}
	now := time.Now()
	req.AdminApproved = &approved
	req.ResolvedBy = &resolvedBy
	req.ResolvedAt = &now
	if notes != "" {
		req.AdminNotes = &notes
	}
	copy := *req
	return &copy, nil
}

func (f *fakeUpdateRequestStore) Approve(_ context.Context, id, resolvedBy int64, notes string) (*models.UpdateRequest, error) {
	req, err := f.resolve(id, resolvedBy, true, notes)
	if err != nil {
		return nil, err
	}
	if p, ok := f.properties.properties[req.PropertyID]; ok {
		status := req.NewStatus
		p.AvailabilityStatus = &status
		if status == models.AvailabilitySold {
			now := time.Now()
			p.SoldAt = &now
			if req.SoldPrice != nil {
				p.SoldPrice = req.SoldPrice
			}
		}
	}
	return req, nil
}

func (f *fakeUpdateRequestStore) Reject(_ context.Context, id, resolvedBy int64, notes string) (*models.UpdateRequest, error) {
	return f.resolve(id, resolvedBy, false, notes)
}

type fakeMessageStore struct {
	messages []*models.Message
	nextID   int64
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{nextID: 1}
}

func (f *fakeMessageStore) CreateMessage(_ context.Context, m *models.Message) (*models.Message, error) {
	stored := *m
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.messages = append(f.messages, &stored)
	f.nextID++
	copy := stored
	return &copy, nil
}

func (f *fakeMessageStore) GetConversations(_ context.Context, userID int64) ([]models.Conversation, error) {
	byOther := map[int64]*models.Conversation{}
	for _, m := range f.messages {
		var otherID int64
		switch userID {
		case m.SenderID:
			otherID = m.ReceiverID
		case m.ReceiverID:
			otherID = m.SenderID
		default:
			continue
		}
		conv, ok := byOther[otherID]
		if !ok {
			conv = &models.Conversation{OtherUser: &models.User{ID: otherID}}
			byOther[otherID] = conv
		}
		msg := *m
		conv.LastMessage = &msg
		if m.ReceiverID == userID && !m.IsRead {
			conv.UnreadCount++
		}
	}
	conversations := make([]models.Conversation, 0, len(byOther))
	for _, conv := range byOther {
		conversations = append(conversations, *conv)
	}
	return conversations, nil
}

func (f *fakeMessageStore) GetThread(_ context.Context, userID, otherID int64, offset uint64, limit int) ([]models.Message, int64, error) {
	var thread []models.Message
	for _, m := range f.messages {
		if (m.SenderID == userID && m.ReceiverID == otherID) ||
			(m.SenderID == otherID && m.ReceiverID == userID) {
			thread = append(thread, *m)
		}
	}
	return thread, int64(len(thread)), nil
}

func (f *fakeMessageStore) MarkThreadRead(_ context.Context, userID, otherID int64) (int64, error) {
	var updated int64
	for _, m := range f.messages {
		if m.ReceiverID == userID && m.SenderID == otherID && !m.IsRead {
			m.IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (f *fakeMessageStore) CountUnread(_ context.Context, userID int64) (int, error) {
	count := 0
	for _, m := range f.messages {
		if m.ReceiverID == userID && !m.IsRead {
			count++
		}
	}
	return count, nil
}

type fakeStorage struct {
	saved   []string
	deleted []string
	nextID  int
}

func (f *fakeStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	return f.SaveFileWithPath(fileHeader, "")
}

func (f *fakeStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	f.nextID++
	url := fmt.Sprintf("http://localhost:8080/uploads/%s/%d-%s", subPath, f.nextID, fileHeader.Filename)
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeStorage) DeleteFile(filePath string) error {
	f.deleted = append(f.deleted, filePath)
	return nil
}

func (f *fakeStorage) GetFullPath(fileURL string) string {
	return fileURL
}

type pushedEvent struct {
	userID    int64
	eventType string
	payload   interface{}
}

type fakePusher struct {
	events []pushedEvent
}

func (f *fakePusher) SendToUser(userID int64, eventType string, payload interface{}) {
	f.events = append(f.events, pushedEvent{userID: userID, eventType: eventType, payload: payload})
}
