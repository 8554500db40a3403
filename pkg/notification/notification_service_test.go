package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"fridgetrack/domain"
	"fridgetrack/entities"

	"github.com/google/uuid"
)

type fakeUserRepository struct {
	users     []*entities.User
	listErr   error
	byIDErr   error
	usersByID map[string]*entities.User
}

func (f *fakeUserRepository) Create(ctx context.Context, user *entities.User) error { return nil }
func (f *fakeUserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	if u, ok := f.usersByID[id]; ok {
		return u, nil
	}
	for _, u := range f.users {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}
func (f *fakeUserRepository) GetByGoogleID(ctx context.Context, googleID string) (*entities.User, error) {
	return nil, errors.New("not found")
}
func (f *fakeUserRepository) Update(ctx context.Context, user *entities.User) error { return nil }
func (f *fakeUserRepository) Delete(ctx context.Context, id string) error           { return nil }
func (f *fakeUserRepository) GetNotifiableUsers(ctx context.Context) ([]*entities.User, error) {
	return f.users, f.listErr
}

type fakeFridgeRepository struct {
	itemsByUser map[string][]*entities.FoodItem
	errByUser   map[string]error
}

func (f *fakeFridgeRepository) AddFoodItem(ctx context.Context, foodItem *entities.FoodItem) error {
	return nil
}
func (f *fakeFridgeRepository) GetFoodItemByID(ctx context.Context, id string) (*entities.FoodItem, error) {
	return nil, errors.New("not found")
}
func (f *fakeFridgeRepository) UpdateFoodItem(ctx context.Context, foodItem *entities.FoodItem) error {
	return nil
}
func (f *fakeFridgeRepository) DeleteFoodItem(ctx context.Context, id string) error { return nil }
func (f *fakeFridgeRepository) GetFridgeItems(ctx context.Context, userID string) ([]*entities.FoodItem, error) {
	if err, ok := f.errByUser[userID]; ok {
		return nil, err
	}
	return f.itemsByUser[userID], nil
}
func (f *fakeFridgeRepository) DeleteFoodItemsByUser(ctx context.Context, userID string) error {
	return nil
}
func (f *fakeFridgeRepository) CreateFoodType(ctx context.Context, foodType *entities.FoodType) error {
	return nil
}
func (f *fakeFridgeRepository) GetFoodTypeByID(ctx context.Context, id string) (*entities.FoodType, error) {
	return nil, errors.New("not found")
}
func (f *fakeFridgeRepository) GetFoodTypeByBarcode(ctx context.Context, barcode string) (*entities.FoodType, error) {
	return nil, errors.New("not found")
}
func (f *fakeFridgeRepository) UpdateFoodType(ctx context.Context, foodType *entities.FoodType) error {
	return nil
}
func (f *fakeFridgeRepository) GetFoodTypes(ctx context.Context, page, limit int) ([]*entities.FoodType, int64, error) {
	return nil, 0, nil
}

type fakePushSender struct {
	sent        []domain.PushMessage
	failTokens  map[string]bool
	initialized bool
}

func (f *fakePushSender) Send(ctx context.Context, message domain.PushMessage) error {
	if f.failTokens[message.Token] {
		return errors.New("delivery failed")
	}
	f.sent = append(f.sent, message)
	return nil
}

func (f *fakePushSender) IsInitialized() bool { return f.initialized }

type sentMail struct {
	toEmail string
	subject string
	body    string
}

type fakeMailSender struct {
	sent    []sentMail
	sendErr error
}

func (f *fakeMailSender) Send(toEmail, subject, body string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{toEmail: toEmail, subject: subject, body: body})
	return nil
}

func testUser(email, token string, threshold int) *entities.User {
	return &entities.User{
		ID:       uuid.New(),
		Email:    email,
		FCMToken: token,
		NotificationPreferences: entities.NotificationPreferences{
			ExpiryThresholdDays: threshold,
		},
	}
}

func itemExpiring(name string, date time.Time) *entities.FoodItem {
	return &entities.FoodItem{
		ID:             uuid.New(),
		ExpirationDate: &date,
		PercentLeft:    100,
		Type:           &entities.FoodType{ID: uuid.New(), Name: name},
	}
}

func TestFilterExpiringItemsBoundaries(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)

	within := []*entities.FoodItem{
		itemExpiring("Milk", time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)),
		itemExpiring("Yogurt", time.Date(2025, 6, 12, 23, 0, 0, 0, time.UTC)),
		itemExpiring("Old Cheese", time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)),
	}
	outside := itemExpiring("Butter", time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC))
	noDate := &entities.FoodItem{ID: uuid.New(), PercentLeft: 100}

	items := append(append([]*entities.FoodItem{}, within...), outside, noDate)

	expiring := filterExpiringItems(items, 2, now)
	if len(expiring) != 3 {
		t.Fatalf("expected 3 expiring items, got %d", len(expiring))
	}
	for i, item := range expiring {
		if item != within[i] {
			t.Fatalf("unexpected item at %d: %v", i, item.Type.Name)
		}
	}
}

func TestFilterIgnoresTimeOfDay(t *testing.T) {
	expiry := time.Date(2025, 6, 12, 0, 30, 0, 0, time.UTC)
	items := []*entities.FoodItem{itemExpiring("Milk", expiry)}

	morning := time.Date(2025, 6, 10, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC)

	if len(filterExpiringItems(items, 2, morning)) != len(filterExpiringItems(items, 2, evening)) {
		t.Fatal("filter result must not depend on the time of day")
	}
}

func TestFilterExpiringItemsAcrossTimeZones(t *testing.T) {
	west := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2025, 6, 10, 19, 0, 0, 0, west)

	within := itemExpiring("Yogurt", time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC))
	outside := itemExpiring("Butter", time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC))

	expiring := filterExpiringItems([]*entities.FoodItem{within, outside}, 2, now)
	if len(expiring) != 1 || expiring[0] != within {
		t.Fatalf("expected only the item 2 days out, got %d items", len(expiring))
	}

	east := time.FixedZone("UTC+9", 9*60*60)
	now = time.Date(2025, 6, 10, 7, 0, 0, 0, east)

	expiring = filterExpiringItems([]*entities.FoodItem{within, outside}, 2, now)
	if len(expiring) != 1 || expiring[0] != within {
		t.Fatalf("expected same result east of UTC, got %d items", len(expiring))
	}
}

func TestExpiryTitlePluralization(t *testing.T) {
	if got := expiryTitle(1); got != "1 Item Expiring Soon" {
		t.Fatalf("unexpected singular title: %q", got)
	}
	if got := expiryTitle(3); got != "3 Items Expiring Soon" {
		t.Fatalf("unexpected plural title: %q", got)
	}
}

func TestBuildExpiryMessage(t *testing.T) {
	date := time.Now().AddDate(0, 0, 1)
	items := []*entities.FoodItem{
		itemExpiring("Milk", date),
		itemExpiring("Eggs", date),
		itemExpiring("Spinach", date),
	}

	msg := buildExpiryMessage(items, "token-1")

	if msg.Title != "3 Items Expiring Soon" {
		t.Fatalf("unexpected title: %q", msg.Title)
	}
	if msg.Body != "Milk, Eggs, Spinach" {
		t.Fatalf("unexpected body: %q", msg.Body)
	}
	if msg.Data["itemCount"] != "3" {
		t.Fatalf("unexpected itemCount: %q", msg.Data["itemCount"])
	}
	if msg.Data["type"] != domain.PushTypeExpiry {
		t.Fatalf("unexpected type: %q", msg.Data["type"])
	}
	if msg.Token != "token-1" {
		t.Fatalf("unexpected token: %q", msg.Token)
	}
}

func TestRunExpiryCheckIsolatesUserFailures(t *testing.T) {
	userA := testUser("a@example.com", "token-a", 0)
	userB := testUser("b@example.com", "token-b", 0)

	date := time.Now().AddDate(0, 0, 1)
	fridgeRepo := &fakeFridgeRepository{
		itemsByUser: map[string][]*entities.FoodItem{
			userA.ID.String(): {itemExpiring("Milk", date)},
			userB.ID.String(): {itemExpiring("Eggs", date)},
		},
	}
	sender := &fakePushSender{initialized: true, failTokens: map[string]bool{"token-a": true}}

	service := NewNotificationService(&fakeUserRepository{users: []*entities.User{userA, userB}}, fridgeRepo, sender, &fakeMailSender{})
	summary := service.RunExpiryCheck(context.Background())

	if summary.UsersProcessed != 2 {
		t.Fatalf("expected 2 users processed, got %d", summary.UsersProcessed)
	}
	if summary.NotificationsSent != 1 {
		t.Fatalf("expected 1 notification sent, got %d", summary.NotificationsSent)
	}
	if summary.Errors != 1 {
		t.Fatalf("expected 1 error, got %d", summary.Errors)
	}
	if len(sender.sent) != 1 || sender.sent[0].Token != "token-b" {
		t.Fatalf("expected only user B to receive a push, got %v", sender.sent)
	}
}

func TestRunExpiryCheckOnePushPerUser(t *testing.T) {
	u := testUser("a@example.com", "token-a", 0)
	date := time.Now().AddDate(0, 0, 1)

	fridgeRepo := &fakeFridgeRepository{
		itemsByUser: map[string][]*entities.FoodItem{
			u.ID.String(): {
				itemExpiring("Milk", date),
				itemExpiring("Eggs", date),
				itemExpiring("Spinach", date),
			},
		},
	}
	sender := &fakePushSender{initialized: true}

	service := NewNotificationService(&fakeUserRepository{users: []*entities.User{u}}, fridgeRepo, sender, &fakeMailSender{})
	summary := service.RunExpiryCheck(context.Background())

	if summary.NotificationsSent != 1 {
		t.Fatalf("expected exactly one notification, got %d", summary.NotificationsSent)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one push call, got %d", len(sender.sent))
	}
	if sender.sent[0].Data["itemCount"] != "3" {
		t.Fatalf("expected itemCount 3, got %q", sender.sent[0].Data["itemCount"])
	}
}

func TestRunExpiryCheckSkipsTokenlessUsers(t *testing.T) {
	u := testUser("a@example.com", "", 0)
	u.NotificationPreferences.EnableNotifications = false

	date := time.Now().AddDate(0, 0, 1)
	fridgeRepo := &fakeFridgeRepository{
		itemsByUser: map[string][]*entities.FoodItem{
			u.ID.String(): {itemExpiring("Milk", date)},
		},
	}
	sender := &fakePushSender{initialized: true}

	service := NewNotificationService(&fakeUserRepository{users: []*entities.User{u}}, fridgeRepo, sender, &fakeMailSender{})
	summary := service.RunExpiryCheck(context.Background())

	if summary.UsersProcessed != 1 {
		t.Fatalf("expected user to be processed, got %d", summary.UsersProcessed)
	}
	if summary.NotificationsSent != 0 || summary.Errors != 0 {
		t.Fatalf("expected no sends and no errors, got %+v", summary)
	}
	if len(sender.sent) != 0 {
		t.Fatal("push must never be attempted without a token")
	}
}

func TestRunExpiryCheckEmailsTokenlessUsers(t *testing.T) {
	u := testUser("a@example.com", "", 0)
	u.NotificationPreferences.EnableNotifications = true

	date := time.Now().AddDate(0, 0, 1)
	fridgeRepo := &fakeFridgeRepository{
		itemsByUser: map[string][]*entities.FoodItem{
			u.ID.String(): {itemExpiring("Milk", date)},
		},
	}
	sender := &fakePushSender{initialized: true}
	mailer := &fakeMailSender{}

	service := NewNotificationService(&fakeUserRepository{users: []*entities.User{u}}, fridgeRepo, sender, mailer)
	summary := service.RunExpiryCheck(context.Background())

	if summary.NotificationsSent != 1 || summary.Errors != 0 {
		t.Fatalf("expected 1 sent and no errors, got %+v", summary)
	}
	if len(sender.sent) != 0 {
		t.Fatal("push must not be attempted without a token")
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one mail, got %d", len(mailer.sent))
	}
	if mailer.sent[0].toEmail != "a@example.com" {
		t.Fatalf("unexpected recipient: %q", mailer.sent[0].toEmail)
	}
	if mailer.sent[0].subject != "1 Item Expiring Soon" {
		t.Fatalf("unexpected subject: %q", mailer.sent[0].subject)
	}
}

func TestRunExpiryCheckCountsMailFailures(t *testing.T) {
	userA := testUser("a@example.com", "", 0)
	userA.NotificationPreferences.EnableNotifications = true
	userB := testUser("b@example.com", "token-b", 0)

	date := time.Now().AddDate(0, 0, 1)
	fridgeRepo := &fakeFridgeRepository{
		itemsByUser: map[string][]*entities.FoodItem{
			userA.ID.String(): {itemExpiring("Milk", date)},
			userB.ID.String(): {itemExpiring("Eggs", date)},
		},
	}
	sender := &fakePushSender{initialized: true}
	mailer := &fakeMailSender{sendErr: errors.New("smtp down")}

	service := NewNotificationService(&fakeUserRepository{users: []*entities.User{userA, userB}}, fridgeRepo, sender, mailer)
	summary := service.RunExpiryCheck(context.Background())

	if summary.UsersProcessed != 2 {
		t.Fatalf("expected 2 users processed, got %d", summary.UsersProcessed)
	}
	if summary.Errors != 1 {
		t.Fatalf("expected mail failure counted as error, got %+v", summary)
	}
	if summary.NotificationsSent != 1 || len(sender.sent) != 1 || sender.sent[0].Token != "token-b" {
		t.Fatalf("mail failure must not block the other users, got %+v", summary)
	}
}

func TestRunExpiryCheckNoItemsNoPush(t *testing.T) {
	u := testUser("a@example.com", "token-a", 0)

	fridgeRepo := &fakeFridgeRepository{itemsByUser: map[string][]*entities.FoodItem{}}
	sender := &fakePushSender{initialized: true}

	service := NewNotificationService(&fakeUserRepository{users: []*entities.User{u}}, fridgeRepo, sender, &fakeMailSender{})
	summary := service.RunExpiryCheck(context.Background())

	if summary.NotificationsSent != 0 {
		t.Fatalf("expected no notifications, got %d", summary.NotificationsSent)
	}
	if len(sender.sent) != 0 {
		t.Fatal("no push expected when nothing is expiring")
	}
}

func TestRunExpiryCheckSwallowsListFailure(t *testing.T) {
	service := NewNotificationService(
		&fakeUserRepository{listErr: errors.New("db down")},
		&fakeFridgeRepository{},
		&fakePushSender{initialized: true},
		&fakeMailSender{},
	)

	summary := service.RunExpiryCheck(context.Background())
	if summary != (domain.ExpiryCheckSummary{}) {
		t.Fatalf("expected zero summary on list failure, got %+v", summary)
	}
}

func TestCheckUserNowReportsWithoutToken(t *testing.T) {
	u := testUser("a@example.com", "", 0)

	date := time.Now().AddDate(0, 0, 1)
	fridgeRepo := &fakeFridgeRepository{
		itemsByUser: map[string][]*entities.FoodItem{
			u.ID.String(): {itemExpiring("Milk", date)},
		},
	}

	service := NewNotificationService(&fakeUserRepository{users: []*entities.User{u}}, fridgeRepo, &fakePushSender{}, &fakeMailSender{})
	res, err := service.CheckUserNow(context.Background(), u.ID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ItemsExpiring != 1 {
		t.Fatalf("expected 1 expiring item, got %d", res.ItemsExpiring)
	}
	if res.NotificationSent {
		t.Fatal("notification must not be marked sent without a token")
	}
}

func TestCheckUserNowSendsWithToken(t *testing.T) {
	u := testUser("a@example.com", "token-a", 5)

	date := time.Now().AddDate(0, 0, 4)
	fridgeRepo := &fakeFridgeRepository{
		itemsByUser: map[string][]*entities.FoodItem{
			u.ID.String(): {itemExpiring("Milk", date)},
		},
	}
	sender := &fakePushSender{initialized: true}

	service := NewNotificationService(&fakeUserRepository{users: []*entities.User{u}}, fridgeRepo, sender, &fakeMailSender{})
	res, err := service.CheckUserNow(context.Background(), u.ID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.NotificationSent {
		t.Fatal("expected notification to be sent")
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one push, got %d", len(sender.sent))
	}
}

func TestDebugSnapshotReflectsSenderState(t *testing.T) {
	u := testUser("a@example.com", "token-a", 0)
	fridgeRepo := &fakeFridgeRepository{
		itemsByUser: map[string][]*entities.FoodItem{
			u.ID.String(): {
				itemExpiring("Milk", time.Now()),
				{ID: uuid.New(), PercentLeft: 100},
			},
		},
	}

	service := NewNotificationService(&fakeUserRepository{users: []*entities.User{u}}, fridgeRepo, &fakePushSender{initialized: false}, &fakeMailSender{})
	res, err := service.DebugSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.FirebaseInitialized {
		t.Fatal("expected firebase_initialized false for disabled sender")
	}
	if res.TotalUsersWithTokens != 1 {
		t.Fatalf("expected 1 user with token, got %d", res.TotalUsersWithTokens)
	}
	if len(res.Users) != 1 {
		t.Fatalf("expected 1 debug user, got %d", len(res.Users))
	}
	debugUser := res.Users[0]
	if debugUser.TotalItems != 2 || debugUser.ItemsWithExpiry != 1 {
		t.Fatalf("unexpected item counts: %+v", debugUser)
	}
	if debugUser.ExpiryThreshold != domain.DefaultExpiryThresholdDays {
		t.Fatalf("expected default threshold, got %d", debugUser.ExpiryThreshold)
	}
}

func TestSendTestPushPropagatesDeliveryFailure(t *testing.T) {
	sender := &fakePushSender{initialized: true, failTokens: map[string]bool{"bad-token": true}}
	service := NewNotificationService(&fakeUserRepository{}, &fakeFridgeRepository{}, sender, &fakeMailSender{})

	if _, err := service.SendTestPush(context.Background(), domain.TestPushRequest{FCMToken: "bad-token"}); err == nil {
		t.Fatal("expected error for failed delivery")
	}

	res, err := service.SendTestPush(context.Background(), domain.TestPushRequest{FCMToken: "good-token"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success response, got %+v", res)
	}
}

func TestDisabledSenderFailsSoftly(t *testing.T) {
	sender := &disabledSender{}
	if sender.IsInitialized() {
		t.Fatal("disabled sender must report uninitialized")
	}
	if err := sender.Send(context.Background(), domain.PushMessage{Token: "t"}); !errors.Is(err, domain.ErrPushNotConfigured) {
		t.Fatalf("expected ErrPushNotConfigured, got %v", err)
	}
}
