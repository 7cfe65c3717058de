package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cleaning-cli/internal/core/domain"
)

var (
	placeArea     string
	placeDate     string
	placeCity     int
	placeDistrict string
	placeAddress  string
	placeServices []int
	placeCard     string

	listStatus string
	listFrom   string
	listTo     string
	listCity   int

	payCard        string
	payTransaction string

	setServiceIDs []int

	assignNone bool
)

var requestCmd = &cobra.Command{
	Use:         "request",
	Short:       "Place and process cleaning requests",
	Annotations: needsStorage,
}

var requestPlaceCmd = &cobra.Command{
	Use:   "place",
	Short: "Order a cleaning and pay for it",
	Long: `Places a cleaning request for the signed-in user. The total cost is
computed from the selected services and the area, and the card is charged
immediately.`,
	Args: cobra.NoArgs,
	RunE: runRequestPlace,
}

var requestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your requests",
	Long: `Lists requests visible to the signed-in user: clients see their own
orders, cleaners their assignments, administrators everything.`,
	Args: cobra.NoArgs,
	RunE: runRequestList,
}

var requestAvailableCmd = &cobra.Command{
	Use:   "available",
	Short: "List new requests no cleaner has taken (cleaner)",
	Args:  cobra.NoArgs,
	RunE:  runRequestAvailable,
}

var requestShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a request with its services and payment",
	Args:  cobra.ExactArgs(1),
	RunE:  runRequestShow,
}

var requestTakeCmd = &cobra.Command{
	Use:   "take [id]",
	Short: "Take a new request and start working on it (cleaner)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRequestTake,
}

var requestCompleteCmd = &cobra.Command{
	Use:   "complete [id]",
	Short: "Mark a request in progress as completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runRequestComplete,
}

var requestCancelCmd = &cobra.Command{
	Use:   "cancel [id]",
	Short: "Cancel a request",
	Long:  `Cancels a request. Cancelling a new request also cancels its payment.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRequestCancel,
}

var requestPayCmd = &cobra.Command{
	Use:   "pay [id]",
	Short: "Record the payment of a request that has none",
	Args:  cobra.ExactArgs(1),
	RunE:  runRequestPay,
}

var requestServicesCmd = &cobra.Command{
	Use:   "services [id]",
	Short: "Replace the services of a new request",
	Args:  cobra.ExactArgs(1),
	RunE:  runRequestServices,
}

var requestAssignCmd = &cobra.Command{
	Use:   "assign [id] [cleaner-id]",
	Short: "Assign a cleaner to an open request (admin)",
	Long: `Sets the cleaner of a new or in-progress request without changing its
status. With --none the cleaner of a new request is cleared.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRequestAssign,
}

var requestRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Delete a request (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRequestRemove,
}

func init() {
	f := requestPlaceCmd.Flags()
	f.StringVar(&placeArea, "area", "", "area to clean in square meters")
	f.StringVar(&placeDate, "date", "", "cleaning date (YYYY-MM-DD)")
	f.IntVar(&placeCity, "city", 0, "city id")
	f.StringVar(&placeDistrict, "district", "", "district")
	f.StringVar(&placeAddress, "address", "", "street address")
	f.IntSliceVarP(&placeServices, "service", "s", nil, "service id (repeatable)")
	f.StringVar(&placeCard, "card", "", "16-digit card number (prompted when omitted)")

	f = requestListCmd.Flags()
	f.StringVar(&listStatus, "status", "", "new, in_progress, completed or cancelled")
	f.StringVar(&listFrom, "from", "", "first cleaning date (YYYY-MM-DD)")
	f.StringVar(&listTo, "to", "", "last cleaning date (YYYY-MM-DD)")
	f.IntVar(&listCity, "city", 0, "city id")

	requestPayCmd.Flags().StringVar(&payCard, "card", "", "16-digit card number (prompted when omitted)")
	requestPayCmd.Flags().StringVar(&payTransaction, "transaction", "", "transaction id (generated when omitted)")

	requestServicesCmd.Flags().IntSliceVarP(&setServiceIDs, "service", "s", nil, "service id (repeatable)")

	requestAssignCmd.Flags().BoolVar(&assignNone, "none", false, "clear the cleaner instead of setting one")

	for _, c := range []*cobra.Command{
		requestPlaceCmd, requestListCmd, requestAvailableCmd, requestShowCmd,
		requestTakeCmd, requestCompleteCmd, requestCancelCmd, requestPayCmd,
		requestServicesCmd, requestAssignCmd, requestRemoveCmd,
	} {
		requestCmd.AddCommand(c)
	}
	rootCmd.AddCommand(requestCmd)
}

func runRequestPlace(cmd *cobra.Command, _ []string) error {
	if requestService == nil {
		return errors.New("request service not configured")
	}
	area, err := parseAmount("area", placeArea)
	if err != nil {
		return err
	}
	date, err := parseDate(placeDate)
	if err != nil {
		return err
	}
	actor, err := currentActor(cmd)
	if err != nil {
		return err
	}
	card := placeCard
	if card == "" {
		card = readPassword(cmd, "Card number: ")
	}

	req, err := requestService.Place(cmd.Context(), actor, domain.Order{
		Area:         area,
		CleaningDate: date,
		CityID:       placeCity,
		District:     placeDistrict,
		Address:      placeAddress,
		ServiceIDs:   placeServices,
		CardNumber:   card,
	})
	if err != nil {
		return fmt.Errorf("failed to place request: %w", err)
	}
	printSuccess(cmd, "Placed request %d for %s, total %s", req.ID, req.CleaningDate.Format(dateLayout), req.TotalCost.StringFixed(2))
	return nil
}

func runRequestList(cmd *cobra.Command, _ []string) error {
	if requestService == nil {
		return errors.New("request service not configured")
	}
	filter, err := requestFilter()
	if err != nil {
		return err
	}
	actor, err := currentActor(cmd)
	if err != nil {
		return err
	}

	requests, err := requestService.Visible(cmd.Context(), actor, filter)
	if err != nil {
		return fmt.Errorf("failed to list requests: %w", err)
	}
	printRequests(cmd, "Requests", requests)
	return nil
}

func requestFilter() (*domain.RequestFilter, error) {
	var filter domain.RequestFilter
	if listStatus != "" {
		status, err := domain.ParseStatus(listStatus)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}
	var err error
	if filter.StartDate, err = optionalDate(listFrom); err != nil {
		return nil, err
	}
	if filter.EndDate, err = optionalDate(listTo); err != nil {
		return nil, err
	}
	if listCity != 0 {
		filter.CityID = domain.Ptr(listCity)
	}
	return &filter, nil
}

func runRequestAvailable(cmd *cobra.Command, _ []string) error {
	if requestService == nil {
		return errors.New("request service not configured")
	}
	if _, err := currentActor(cmd, domain.RoleCleaner, domain.RoleAdmin); err != nil {
		return err
	}

	requests, err := requestService.Available(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list requests: %w", err)
	}
	printRequests(cmd, "Available requests", requests)
	return nil
}

func printRequests(cmd *cobra.Command, title string, requests []domain.Request) {
	rows := make([][]string, 0, len(requests))
	for i := range requests {
		r := &requests[i]
		cleaner := "-"
		if r.HasCleaner() {
			cleaner = strconv.Itoa(*r.CleanerID)
		}
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			r.CleaningDate.Format(dateLayout),
			r.Status.Label(),
			r.Address,
			r.Area.String(),
			r.TotalCost.StringFixed(2),
			cleaner,
		})
	}
	printTable(cmd, title, []string{"ID", "Date", "Status", "Address", "Area", "Total", "Cleaner"}, rows, "No requests.")
}

// visibleTo reports whether the actor may look at or change a request.
func visibleTo(actor domain.Actor, r *domain.Request) bool {
	return actor.Role == domain.RoleAdmin || actor.Is(r.UserID) ||
		(r.HasCleaner() && actor.Is(*r.CleanerID))
}

func runRequestShow(cmd *cobra.Command, args []string) error {
	if requestService == nil {
		return errors.New("request service not configured")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	actor, err := currentActor(cmd)
	if err != nil {
		return err
	}

	d, err := requestService.Details(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get request: %w", err)
	}
	r := &d.Request
	// Cleaners may inspect new requests before taking them.
	open := actor.Role == domain.RoleCleaner && r.Status == domain.StatusNew && !r.HasCleaner()
	if !visibleTo(actor, r) && !open {
		return fmt.Errorf("request %d is not visible to you", id)
	}

	cmd.Println(titleStyle.Render(fmt.Sprintf("Request %d", r.ID)))
	cmd.Printf("  Status:   %s\n", r.Status.Label())
	cmd.Printf("  Date:     %s\n", r.CleaningDate.Format(dateLayout))
	cmd.Printf("  Client:   %s\n", userLabel(d.Client, r.UserID))
	if r.HasCleaner() {
		cmd.Printf("  Cleaner:  %s\n", userLabel(d.Cleaner, *r.CleanerID))
	} else {
		cmd.Printf("  Cleaner:  %s\n", mutedStyle.Render("not assigned"))
	}
	city := fmt.Sprintf("#%d", r.CityID)
	if d.City != nil {
		city = d.City.Name
	}
	cmd.Printf("  Address:  %s, %s, %s\n", city, r.District, r.Address)
	cmd.Printf("  Area:     %s m²\n", r.Area.String())
	cmd.Printf("  Total:    %s\n", r.TotalCost.StringFixed(2))
	cmd.Println()

	rows := make([][]string, 0, len(d.Services))
	for _, s := range d.Services {
		rows = append(rows, []string{s.Name, priceLabel(s), s.CostFor(r.Area).StringFixed(2)})
	}
	printTable(cmd, "Services", []string{"Service", "Price", "Cost"}, rows, "No services.")

	if p := d.Payment; p != nil {
		cmd.Println()
		cmd.Println(titleStyle.Render("Payment"))
		cmd.Printf("  %s  %s  %s  %s  %s\n", p.PaymentDate.Format(dateLayout), p.CardNumberMasked,
			p.Amount.StringFixed(2), p.Status.Label(), p.TransactionID)
	}
	return nil
}

func userLabel(u *domain.User, id int) string {
	if u == nil {
		return fmt.Sprintf("#%d (deleted)", id)
	}
	return fmt.Sprintf("%s (%s)", u.FullName(), u.Login)
}

type transitionFunc func(*cobra.Command, domain.Actor, int) (*domain.Request, error)

func runTransition(cmd *cobra.Command, args []string, verb string, roles []domain.Role, do transitionFunc) error {
	if requestService == nil {
		return errors.New("request service not configured")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	actor, err := currentActor(cmd, roles...)
	if err != nil {
		return err
	}

	req, err := do(cmd, actor, id)
	if err != nil {
		var te *domain.TransitionError
		if errors.As(err, &te) {
			return fmt.Errorf("request %d is %s and cannot be %s", id, te.From.Label(), verb)
		}
		return fmt.Errorf("failed to update request: %w", err)
	}
	printSuccess(cmd, "Request %d is now %s", req.ID, req.Status.Label())
	return nil
}

func runRequestTake(cmd *cobra.Command, args []string) error {
	return runTransition(cmd, args, "taken", []domain.Role{domain.RoleCleaner},
		func(c *cobra.Command, a domain.Actor, id int) (*domain.Request, error) {
			return requestService.Take(c.Context(), a, id)
		})
}

func runRequestComplete(cmd *cobra.Command, args []string) error {
	return runTransition(cmd, args, "completed", []domain.Role{domain.RoleCleaner, domain.RoleAdmin},
		func(c *cobra.Command, a domain.Actor, id int) (*domain.Request, error) {
			return requestService.Complete(c.Context(), a, id)
		})
}

func runRequestCancel(cmd *cobra.Command, args []string) error {
	return runTransition(cmd, args, "cancelled", nil,
		func(c *cobra.Command, a domain.Actor, id int) (*domain.Request, error) {
			return requestService.Cancel(c.Context(), a, id)
		})
}

// ownedRequest loads a request the actor placed, or any request for admins.
func ownedRequest(cmd *cobra.Command, id int) (*domain.Request, error) {
	actor, err := currentActor(cmd)
	if err != nil {
		return nil, err
	}
	req, err := requestService.Get(cmd.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	if actor.Role != domain.RoleAdmin && !actor.Is(req.UserID) {
		return nil, fmt.Errorf("request %d is not yours", id)
	}
	return req, nil
}

func runRequestPay(cmd *cobra.Command, args []string) error {
	if requestService == nil {
		return errors.New("request service not configured")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if _, err := ownedRequest(cmd, id); err != nil {
		return err
	}
	card := payCard
	if card == "" {
		card = readPassword(cmd, "Card number: ")
	}

	p, err := requestService.RecordPayment(cmd.Context(), id, card, payTransaction)
	if err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}
	printSuccess(cmd, "Recorded payment %d of %s (transaction %s)", p.ID, p.Amount.StringFixed(2), p.TransactionID)
	return nil
}

func runRequestServices(cmd *cobra.Command, args []string) error {
	if requestService == nil {
		return errors.New("request service not configured")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if _, err := ownedRequest(cmd, id); err != nil {
		return err
	}

	req, err := requestService.SetServices(cmd.Context(), id, setServiceIDs)
	if err != nil {
		return fmt.Errorf("failed to change services: %w", err)
	}
	printSuccess(cmd, "Request %d now has %d service(s), total %s", id, len(setServiceIDs), req.TotalCost.StringFixed(2))
	return nil
}

func runRequestAssign(cmd *cobra.Command, args []string) error {
	if requestService == nil {
		return errors.New("request service not configured")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	var cleanerID *int
	switch {
	case assignNone && len(args) == 2:
		return errors.New("give either a cleaner id or --none")
	case assignNone:
	case len(args) == 2:
		cid, err := parseID(args[1])
		if err != nil {
			return err
		}
		cleanerID = &cid
	default:
		return errors.New("a cleaner id or --none is required")
	}
	actor, err := currentActor(cmd, domain.RoleAdmin)
	if err != nil {
		return err
	}

	req, err := requestService.AssignCleaner(cmd.Context(), actor, id, cleanerID)
	if err != nil {
		return fmt.Errorf("failed to assign cleaner: %w", err)
	}
	if req.CleanerID == nil {
		printSuccess(cmd, "Request %d has no cleaner", id)
		return nil
	}
	printSuccess(cmd, "Request %d is assigned to cleaner %d", id, *req.CleanerID)
	return nil
}

func runRequestRemove(cmd *cobra.Command, args []string) error {
	if requestService == nil {
		return errors.New("request service not configured")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if _, err := currentActor(cmd, domain.RoleAdmin); err != nil {
		return err
	}

	if err := requestService.Remove(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to remove request: %w", err)
	}
	printSuccess(cmd, "Removed request %d", id)
	return nil
}
