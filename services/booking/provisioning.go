package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "comoencasa/database/repository/appointment"
	providerRepo "comoencasa/database/repository/provider"
	purchaseRepo "comoencasa/database/repository/purchase"
	serviceRepo "comoencasa/database/repository/service"
	"comoencasa/models"
	"comoencasa/services/identity"
	"comoencasa/services/scheduling"
	"comoencasa/services/tasks"
	"comoencasa/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxSlotRetries bounds how often an auto-assigned booking is re-matched
// after losing the slot race to a concurrent booking.
const maxSlotRetries = 3

// DefaultProvisioningService turns a confirmed payment into a client account,
// a purchase record, an appointment and the follow-up emails.
type DefaultProvisioningService struct {
	Identity        identity.Service
	Matcher         scheduling.MatchingService
	Engine          scheduling.SchedulingEngine
	ServiceRepo     serviceRepo.ServiceRepository
	PurchaseRepo    purchaseRepo.PurchaseRepository
	AppointmentRepo appointmentRepo.AppointmentRepository
	ProviderRepo    providerRepo.ProviderRepository
	Dispatcher      tasks.Dispatcher
}

// HandlePaymentConfirmed runs the full provisioning workflow for one payment
// confirmation.
//
// The purchase record doubles as the idempotency marker, and it is consulted
// FIRST: a redelivered event must not re-run provider resolution, because the
// first delivery's own appointment now occupies the slot and resolution would
// spuriously fail. A redelivery either skips (appointment already placed) or
// resumes the appointment step, so every outcome short of a storage failure
// is safe to retry.
func (s *DefaultProvisioningService) HandlePaymentConfirmed(ctx context.Context, req models.AppointmentRequest) error {
	logger := utils.GetLogger().With(
		zap.String("service", "provisioning"),
		zap.String("checkoutSession", req.CheckoutSessionID))

	startAt, err := req.StartAt()
	if err != nil {
		return fmt.Errorf("invalid booking slot in metadata: %w", err)
	}

	// Redelivered events and crash recovery both land here.
	existing, err := s.PurchaseRepo.GetByCheckoutSessionID(ctx, req.CheckoutSessionID)
	if err == nil {
		return s.resume(ctx, logger, req, existing, startAt)
	}
	if !errors.Is(err, purchaseRepo.ErrNotFound) {
		logger.Error("idempotency lookup failed", zap.Error(err))
		return fmt.Errorf("failed to look up purchase for session %s: %w", req.CheckoutSessionID, err)
	}

	// Step 1: resolve the client identity.
	user, created, err := s.resolveIdentity(ctx, req)
	if err != nil {
		logger.Error("identity resolution failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrIdentityProvisioning, err)
	}
	logger.Info("identity resolved", zap.String("userID", user.ID), zap.Bool("created", created))

	// Step 2: refresh profile fields with what the buyer typed at checkout.
	if err := s.Identity.EnsureProfile(ctx, user.ID, req.FullName, req.Phone); err != nil {
		logger.Error("profile update failed", zap.Error(err))
		return fmt.Errorf("failed to ensure profile for user %s: %w", user.ID, err)
	}

	// Step 3: pick the provider. An explicit choice was validated at checkout
	// but the world may have moved since; re-validate against live occupancy.
	providerID, err := s.resolveProvider(ctx, logger, req)
	if err != nil {
		return err
	}

	svc, err := s.ServiceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		return fmt.Errorf("failed to load service %s: %w", req.ServiceID, err)
	}

	// Step 4: record the purchase. A duplicate key here means a concurrent
	// delivery of the same event won the insert race; fall through to its
	// record instead of failing.
	purchase := &models.Purchase{
		ID:                uuid.NewString(),
		UserID:            user.ID,
		ServiceID:         svc.ID,
		ProviderID:        providerID,
		CheckoutSessionID: req.CheckoutSessionID,
		AmountCents:       svc.PriceCents,
		Currency:          svc.Currency,
		Status:            models.PurchasePaid,
	}
	if err := s.PurchaseRepo.Create(ctx, purchase); err != nil {
		if errors.Is(err, purchaseRepo.ErrDuplicateCheckoutSession) {
			winner, qerr := s.PurchaseRepo.GetByCheckoutSessionID(ctx, req.CheckoutSessionID)
			if qerr != nil {
				return fmt.Errorf("failed to re-query purchase after insert race: %w", qerr)
			}
			return s.resume(ctx, logger, req, winner, startAt)
		}
		logger.Error("purchase insert failed", zap.Error(err))
		return err
	}

	return s.complete(ctx, logger, req, purchase, user, created, svc, startAt, providerID)
}

// resume handles a payment whose purchase is already recorded: done if the
// appointment exists, otherwise the appointment step is re-run against live
// occupancy.
func (s *DefaultProvisioningService) resume(ctx context.Context, logger *zap.Logger, req models.AppointmentRequest, purchase *models.Purchase, startAt time.Time) error {
	if _, err := s.AppointmentRepo.GetByPurchaseID(ctx, purchase.ID); err == nil {
		logger.Info("payment already provisioned, skipping")
		return nil
	} else if !errors.Is(err, appointmentRepo.ErrNotFound) {
		return fmt.Errorf("failed to look up appointment for purchase %s: %w", purchase.ID, err)
	}

	logger.Info("resuming provisioning for recorded purchase",
		zap.String("purchaseID", purchase.ID))

	user, err := s.Identity.GetByID(ctx, purchase.UserID)
	if err != nil {
		logger.Error("failed to load account for recorded purchase", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrIdentityProvisioning, err)
	}
	svc, err := s.ServiceRepo.GetByID(ctx, purchase.ServiceID)
	if err != nil {
		return fmt.Errorf("failed to load service %s: %w", purchase.ServiceID, err)
	}
	providerID, err := s.resolveProvider(ctx, logger, req)
	if err != nil {
		return err
	}

	// The account existed before this run; no welcome email on resume.
	return s.complete(ctx, logger, req, purchase, user, false, svc, startAt, providerID)
}

// complete records the appointment and sends the notifications.
func (s *DefaultProvisioningService) complete(ctx context.Context, logger *zap.Logger, req models.AppointmentRequest, purchase *models.Purchase, user *models.User, created bool, svc *models.Service, startAt time.Time, providerID string) error {
	appointment, err := s.recordAppointment(ctx, logger, req, purchase, providerID, startAt)
	if err != nil {
		return err
	}
	s.Engine.InvalidateSlots(ctx, req.Date)
	logger.Info("appointment recorded",
		zap.String("appointmentID", appointment.ID),
		zap.String("providerID", appointment.ProviderID),
		zap.Time("startAt", appointment.StartAt))

	// Notifications are best effort, never failing the workflow.
	s.dispatchNotifications(ctx, logger, req, user, created, svc, appointment)

	logger.Info("provisioning complete", zap.String("purchaseID", purchase.ID))
	return nil
}

// resolveIdentity maps the request to an account: explicit client ID first,
// then email lookup with lazy account creation.
func (s *DefaultProvisioningService) resolveIdentity(ctx context.Context, req models.AppointmentRequest) (*models.User, bool, error) {
	if req.ClientID != nil {
		user, err := s.Identity.GetByID(ctx, *req.ClientID)
		if err == nil {
			return user, false, nil
		}
		// Fall through to email resolution when the claimed ID is stale.
	}
	return s.Identity.EnsureClient(ctx, req.Email, req.FullName, req.Phone)
}

// resolveProvider re-runs matching against live occupancy, translating a
// failed explicit choice into ErrProviderNoLongerAvailable.
func (s *DefaultProvisioningService) resolveProvider(ctx context.Context, logger *zap.Logger, req models.AppointmentRequest) (string, error) {
	providerID, err := s.Matcher.Resolve(ctx, req.Date, req.Time, req.ProviderID)
	if err != nil {
		if req.ProviderID != nil && errors.Is(err, scheduling.ErrNoProviderAvailable) {
			logger.Warn("chosen provider lost between checkout and payment",
				zap.String("providerID", *req.ProviderID))
			return "", ErrProviderNoLongerAvailable
		}
		logger.Error("provider resolution failed", zap.Error(err))
		return "", err
	}
	return providerID, nil
}

// recordAppointment inserts the appointment, re-matching on slot conflicts
// for auto-assigned bookings.
func (s *DefaultProvisioningService) recordAppointment(ctx context.Context, logger *zap.Logger, req models.AppointmentRequest, purchase *models.Purchase, providerID string, startAt time.Time) (*models.Appointment, error) {
	for attempt := 0; ; attempt++ {
		appointment := &models.Appointment{
			ID:         uuid.NewString(),
			UserID:     purchase.UserID,
			ProviderID: providerID,
			ServiceID:  purchase.ServiceID,
			PurchaseID: purchase.ID,
			StartAt:    startAt,
			EndAt:      startAt.Add(utils.SessionDuration),
			Status:     models.AppointmentConfirmed,
			Notes:      req.Notes,
		}
		err := s.AppointmentRepo.Create(ctx, appointment)
		if err == nil {
			if appointment.ProviderID != purchase.ProviderID {
				if uerr := s.PurchaseRepo.UpdateProvider(ctx, purchase.ID, appointment.ProviderID); uerr != nil {
					logger.Warn("failed to record reassigned provider on purchase", zap.Error(uerr))
				}
			}
			return appointment, nil
		}
		if !errors.Is(err, appointmentRepo.ErrSlotTaken) {
			logger.Error("appointment insert failed", zap.Error(err))
			return nil, err
		}

		// Lost the slot race.
		if req.ProviderID != nil {
			logger.Warn("chosen provider was booked concurrently",
				zap.String("providerID", providerID))
			return nil, ErrProviderNoLongerAvailable
		}
		if attempt >= maxSlotRetries {
			logger.Error("exhausted provider reassignment attempts")
			return nil, scheduling.ErrNoProviderAvailable
		}
		providerID, err = s.Matcher.Resolve(ctx, req.Date, req.Time, nil)
		if err != nil {
			logger.Error("reassignment after slot conflict failed", zap.Error(err))
			return nil, err
		}
		logger.Info("reassigning booking after slot conflict",
			zap.String("providerID", providerID),
			zap.Int("attempt", attempt+1))
	}
}

// dispatchNotifications enqueues the welcome (for new accounts), booking
// summary and 24h reminder emails. Failures are logged and swallowed.
func (s *DefaultProvisioningService) dispatchNotifications(ctx context.Context, logger *zap.Logger, req models.AppointmentRequest, user *models.User, created bool, svc *models.Service, appointment *models.Appointment) {
	if created {
		setupURL, err := s.Identity.GenerateSetupLink(user)
		if err != nil {
			logger.Warn("failed to generate setup link", zap.Error(err))
		}
		welcome := models.WelcomePayload{Email: user.Email, FullName: req.FullName, SetupURL: setupURL}
		if err := s.Dispatcher.DispatchWelcome(ctx, welcome); err != nil {
			logger.Warn("failed to enqueue welcome email", zap.Error(err))
		}
	}

	providerName := appointment.ProviderID
	if provider, err := s.ProviderRepo.GetByID(ctx, appointment.ProviderID); err == nil {
		providerName = provider.FullName
	}

	summary := models.BookingSummaryPayload{
		Email:        user.Email,
		FullName:     req.FullName,
		Date:         req.Date,
		Time:         req.Time,
		ProviderName: providerName,
		ServiceName:  svc.Name,
	}
	if err := s.Dispatcher.DispatchBookingSummary(ctx, summary); err != nil {
		logger.Warn("failed to enqueue booking summary email", zap.Error(err))
	}

	reminder := models.ReminderPayload{
		Email:    user.Email,
		FullName: req.FullName,
		Date:     req.Date,
		Time:     req.Time,
	}
	fireAt := appointment.StartAt.Add(-utils.ReminderLeadTime)
	if err := s.Dispatcher.DispatchReminder(ctx, reminder, fireAt); err != nil {
		logger.Warn("failed to enqueue session reminder", zap.Error(err))
	}
}
