// Package apitest provides an in-memory stand-in for the rental backend.
// It implements the /api contract closely enough to exercise the real wire
// format: JSON bodies, 404/409 error shapes, the quote oracle endpoints, and
// the backend-authoritative status transition rules.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"medequip-console/internal/domain"
)

// Server is a fake rental backend serving the /api surface from memory.
type Server struct {
	mu         sync.Mutex
	categories map[int64]*domain.Category
	equipment  map[int64]*domain.Equipment
	customers  map[int64]*domain.Customer
	rentals    map[int64]*domain.Rental
	nextID     int64

	// Call counters for idempotency assertions.
	CustomerCreates int
	RentalCreates   int

	httpServer *httptest.Server
}

// transitions mirrors the backend's authoritative status rules.
var transitions = map[domain.RentalStatus][]domain.RentalStatus{
	domain.RentalStatusPending:   {domain.RentalStatusConfirmed, domain.RentalStatusCancelled},
	domain.RentalStatusConfirmed: {domain.RentalStatusActive, domain.RentalStatusCancelled},
	domain.RentalStatusActive:    {domain.RentalStatusCompleted, domain.RentalStatusCancelled},
	domain.RentalStatusOverdue:   {domain.RentalStatusCompleted, domain.RentalStatusCancelled},
	domain.RentalStatusCompleted: {},
	domain.RentalStatusCancelled: {},
}

// NewServer starts a fake backend. Callers must Close it.
func NewServer() *Server {
	s := &Server{
		categories: make(map[int64]*domain.Category),
		equipment:  make(map[int64]*domain.Equipment),
		customers:  make(map[int64]*domain.Customer),
		rentals:    make(map[int64]*domain.Rental),
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/categories", s.listCategories).Methods(http.MethodGet)
	api.HandleFunc("/categories", s.createCategory).Methods(http.MethodPost)
	api.HandleFunc("/categories/{id:[0-9]+}", s.getCategory).Methods(http.MethodGet)
	api.HandleFunc("/categories/{id:[0-9]+}", s.updateCategory).Methods(http.MethodPut)
	api.HandleFunc("/categories/{id:[0-9]+}", s.deleteCategory).Methods(http.MethodDelete)
	api.HandleFunc("/categories/{id:[0-9]+}/with-equipment", s.getCategoryWithEquipment).Methods(http.MethodGet)

	api.HandleFunc("/equipment", s.listEquipment).Methods(http.MethodGet)
	api.HandleFunc("/equipment", s.createEquipment).Methods(http.MethodPost)
	api.HandleFunc("/equipment/available", s.listAvailableEquipment).Methods(http.MethodGet)
	api.HandleFunc("/equipment/search", s.searchEquipment).Methods(http.MethodGet)
	api.HandleFunc("/equipment/price-range", s.listEquipmentByPriceRange).Methods(http.MethodGet)
	api.HandleFunc("/equipment/status/{status}", s.listEquipmentByStatus).Methods(http.MethodGet)
	api.HandleFunc("/equipment/category/{id:[0-9]+}", s.listEquipmentByCategory).Methods(http.MethodGet)
	api.HandleFunc("/equipment/category/{id:[0-9]+}/available", s.listAvailableEquipmentByCategory).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id:[0-9]+}", s.getEquipment).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id:[0-9]+}", s.updateEquipment).Methods(http.MethodPut)
	api.HandleFunc("/equipment/{id:[0-9]+}", s.deleteEquipment).Methods(http.MethodDelete)
	api.HandleFunc("/equipment/{id:[0-9]+}/with-category", s.getEquipmentWithCategory).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id:[0-9]+}/availability", s.checkEquipmentAvailability).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id:[0-9]+}/image", s.uploadEquipmentImage).Methods(http.MethodPost)

	api.HandleFunc("/customers", s.listCustomers).Methods(http.MethodGet)
	api.HandleFunc("/customers", s.createCustomer).Methods(http.MethodPost)
	api.HandleFunc("/customers/search", s.searchCustomers).Methods(http.MethodGet)
	api.HandleFunc("/customers/email/{email}", s.getCustomerByEmail).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id:[0-9]+}", s.getCustomer).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id:[0-9]+}", s.updateCustomer).Methods(http.MethodPut)
	api.HandleFunc("/customers/{id:[0-9]+}", s.deleteCustomer).Methods(http.MethodDelete)
	api.HandleFunc("/customers/{id:[0-9]+}/with-rentals", s.getCustomerWithRentals).Methods(http.MethodGet)

	api.HandleFunc("/rentals", s.listRentals).Methods(http.MethodGet)
	api.HandleFunc("/rentals", s.createRental).Methods(http.MethodPost)
	api.HandleFunc("/rentals/overdue", s.listOverdueRentals).Methods(http.MethodGet)
	api.HandleFunc("/rentals/active", s.listActiveRentalsOnDate).Methods(http.MethodGet)
	api.HandleFunc("/rentals/status/{status}", s.listRentalsByStatus).Methods(http.MethodGet)
	api.HandleFunc("/rentals/customer/{id:[0-9]+}", s.listRentalsByCustomer).Methods(http.MethodGet)
	api.HandleFunc("/rentals/equipment/{id:[0-9]+}", s.listRentalsByEquipment).Methods(http.MethodGet)
	api.HandleFunc("/rentals/equipment/{id:[0-9]+}/availability", s.checkRentalAvailability).Methods(http.MethodGet)
	api.HandleFunc("/rentals/equipment/{id:[0-9]+}/available-quantity", s.availableQuantityForPeriod).Methods(http.MethodGet)
	api.HandleFunc("/rentals/equipment/{id:[0-9]+}/cost", s.calculateCost).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id:[0-9]+}", s.getRental).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id:[0-9]+}", s.updateRental).Methods(http.MethodPut)
	api.HandleFunc("/rentals/{id:[0-9]+}", s.deleteRental).Methods(http.MethodDelete)
	api.HandleFunc("/rentals/{id:[0-9]+}/details", s.getRentalWithDetails).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id:[0-9]+}/status", s.updateRentalStatus).Methods(http.MethodPatch)

	s.httpServer = httptest.NewServer(r)
	return s
}

// URL returns the base URL of the fake /api surface.
func (s *Server) URL() string {
	return s.httpServer.URL + "/api"
}

func (s *Server) Close() {
	s.httpServer.Close()
}

// --- seed helpers ---

func (s *Server) AddCategory(c domain.Category) *domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.allocID()
	}
	stored := c
	s.categories[stored.ID] = &stored
	return &stored
}

func (s *Server) AddEquipment(e domain.Equipment) *domain.Equipment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == 0 {
		e.ID = s.allocID()
	}
	stored := e
	s.equipment[stored.ID] = &stored
	return &stored
}

func (s *Server) AddCustomer(c domain.Customer) *domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.allocID()
	}
	stored := c
	s.customers[stored.ID] = &stored
	return &stored
}

func (s *Server) AddRental(r domain.Rental) *domain.Rental {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == 0 {
		r.ID = s.allocID()
	}
	stored := r
	s.rentals[stored.ID] = &stored
	return &stored
}

// Rental returns the stored rental by id, or nil.
func (s *Server) Rental(id int64) *domain.Rental {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rentals[id]; ok {
		copied := *r
		return &copied
	}
	return nil
}

// CustomerCount reports how many customers the fake backend holds.
func (s *Server) CustomerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.customers)
}

// RentalCount reports how many rentals the fake backend holds.
func (s *Server) RentalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rentals)
}

func (s *Server) allocID() int64 {
	s.nextID++
	return s.nextID
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, map[string]string{"message": fmt.Sprintf(format, args...)})
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

// datesOverlap treats dates as inclusive ISO calendar days; lexicographic
// comparison is order-preserving for YYYY-MM-DD.
func datesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return aStart <= bEnd && bStart <= aEnd
}

func rentalDays(startDate, endDate string) (int, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return 0, err
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return 0, err
	}
	days := int(end.Sub(start).Hours()/24) + 1 // both endpoints count
	if days < 1 {
		return 0, fmt.Errorf("end date before start date")
	}
	return days, nil
}

// holdsQuantity reports whether the rental ties up stock during its period.
func holdsQuantity(status domain.RentalStatus) bool {
	switch status {
	case domain.RentalStatusPending, domain.RentalStatusConfirmed,
		domain.RentalStatusActive, domain.RentalStatusOverdue:
		return true
	}
	return false
}

// --- category handlers ---

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, *c)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[pathID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) getCategoryWithEquipment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[pathID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	out := *c
	for _, e := range s.equipment {
		if e.Category != nil && e.Category.ID == c.ID {
			out.Equipment = append(out.Equipment, *e)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var c domain.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "malformed category")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.allocID()
	s.categories[c.ID] = &c
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	var c domain.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "malformed category")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := pathID(r)
	if _, ok := s.categories[id]; !ok {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	c.ID = id
	s.categories[id] = &c
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := pathID(r)
	if _, ok := s.categories[id]; !ok {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	delete(s.categories, id)
	w.WriteHeader(http.StatusNoContent)
}

// --- equipment handlers ---

func (s *Server) listEquipment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.filterEquipment(func(e *domain.Equipment) bool { return true }))
}

func (s *Server) listAvailableEquipment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.filterEquipment(func(e *domain.Equipment) bool {
		return e.Status == domain.EquipmentStatusAvailable && e.AvailableQuantity > 0
	}))
}

func (s *Server) searchEquipment(w http.ResponseWriter, r *http.Request) {
	keyword := strings.ToLower(r.URL.Query().Get("keyword"))
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.filterEquipment(func(e *domain.Equipment) bool {
		return strings.Contains(strings.ToLower(e.Name), keyword) ||
			strings.Contains(strings.ToLower(e.Description), keyword) ||
			strings.Contains(strings.ToLower(e.Manufacturer), keyword) ||
			strings.Contains(strings.ToLower(e.Model), keyword)
	}))
}

func (s *Server) listEquipmentByPriceRange(w http.ResponseWriter, r *http.Request) {
	minPrice, _ := strconv.ParseFloat(r.URL.Query().Get("minPrice"), 64)
	maxPrice, _ := strconv.ParseFloat(r.URL.Query().Get("maxPrice"), 64)
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.filterEquipment(func(e *domain.Equipment) bool {
		return e.DailyPrice >= minPrice && e.DailyPrice <= maxPrice
	}))
}

func (s *Server) listEquipmentByStatus(w http.ResponseWriter, r *http.Request) {
	status := domain.EquipmentStatus(mux.Vars(r)["status"])
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.filterEquipment(func(e *domain.Equipment) bool {
		return e.Status == status
	}))
}

func (s *Server) listEquipmentByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.filterEquipment(func(e *domain.Equipment) bool {
		return e.Category != nil && e.Category.ID == categoryID
	}))
}

func (s *Server) listAvailableEquipmentByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.filterEquipment(func(e *domain.Equipment) bool {
		return e.Category != nil && e.Category.ID == categoryID &&
			e.Status == domain.EquipmentStatusAvailable && e.AvailableQuantity > 0
	}))
}

func (s *Server) filterEquipment(keep func(*domain.Equipment) bool) []domain.Equipment {
	out := make([]domain.Equipment, 0, len(s.equipment))
	for _, e := range s.equipment {
		if keep(e) {
			out = append(out, *e)
		}
	}
	return out
}

func (s *Server) getEquipment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.equipment[pathID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "equipment not found")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) getEquipmentWithCategory(w http.ResponseWriter, r *http.Request) {
	// Category is stored inline, so with-category is the plain get.
	s.getEquipment(w, r)
}

func (s *Server) createEquipment(w http.ResponseWriter, r *http.Request) {
	var e domain.Equipment
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "malformed equipment")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.allocID()
	s.equipment[e.ID] = &e
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) updateEquipment(w http.ResponseWriter, r *http.Request) {
	var e domain.Equipment
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "malformed equipment")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := pathID(r)
	if _, ok := s.equipment[id]; !ok {
		writeError(w, http.StatusNotFound, "equipment not found")
		return
	}
	e.ID = id
	s.equipment[id] = &e
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) deleteEquipment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := pathID(r)
	if _, ok := s.equipment[id]; !ok {
		writeError(w, http.StatusNotFound, "equipment not found")
		return
	}
	delete(s.equipment, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) checkEquipmentAvailability(w http.ResponseWriter, r *http.Request) {
	quantity, _ := strconv.Atoi(r.URL.Query().Get("quantity"))
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.equipment[pathID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "equipment not found")
		return
	}
	writeJSON(w, http.StatusOK, e.AvailableQuantity >= quantity)
}

func (s *Server) uploadEquipmentImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "malformed multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.equipment[pathID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "equipment not found")
		return
	}
	e.ImageURL = "/images/" + header.Filename
	writeJSON(w, http.StatusOK, e)
}

// --- customer handlers ---

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, *c)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[pathID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "customer not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) getCustomerWithRentals(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[pathID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "customer not found")
		return
	}
	out := *c
	for _, rt := range s.rentals {
		if rt.Customer != nil && rt.Customer.ID == c.ID {
			out.Rentals = append(out.Rentals, *rt)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getCustomerByEmail(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.customers {
		if strings.EqualFold(c.Email, email) {
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeError(w, http.StatusNotFound, "customer not found")
}

func (s *Server) searchCustomers(w http.ResponseWriter, r *http.Request) {
	name := strings.ToLower(r.URL.Query().Get("name"))
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Customer, 0)
	for _, c := range s.customers {
		if strings.Contains(strings.ToLower(c.FirstName), name) ||
			strings.Contains(strings.ToLower(c.LastName), name) {
			out = append(out, *c)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	var c domain.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "malformed customer")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CustomerCreates++
	for _, existing := range s.customers {
		if strings.EqualFold(existing.Email, c.Email) {
			writeError(w, http.StatusConflict, "customer with email %s already exists", c.Email)
			return
		}
	}
	c.ID = s.allocID()
	s.customers[c.ID] = &c
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) updateCustomer(w http.ResponseWriter, r *http.Request) {
	var c domain.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "malformed customer")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := pathID(r)
	if _, ok := s.customers[id]; !ok {
		writeError(w, http.StatusNotFound, "customer not found")
		return
	}
	c.ID = id
	s.customers[id] = &c
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := pathID(r)
	if _, ok := s.customers[id]; !ok {
		writeError(w, http.StatusNotFound, "customer not found")
		return
	}
	delete(s.customers, id)
	w.WriteHeader(http.StatusNoContent)
}

// --- rental handlers ---

func (s *Server) listRentals(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.filterRentals(func(rt *domain.Rental) bool { return true }))
}

func (s *Server) listOverdueRentals(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.filterRentals(func(rt *domain.Rental) bool {
		return rt.Status == domain.RentalStatusOverdue
	}))
}

func (s *Server) listActiveRentalsOnDate(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.filterRentals(func(rt *domain.Rental) bool {
		return rt.Status == domain.RentalStatusActive && rt.StartDate <= date && date <= rt.EndDate
	}))
}

func (s *Server) listRentalsByStatus(w http.ResponseWriter, r *http.Request) {
	status := domain.RentalStatus(mux.Vars(r)["status"])
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.filterRentals(func(rt *domain.Rental) bool {
		return rt.Status == status
	}))
}

func (s *Server) listRentalsByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.filterRentals(func(rt *domain.Rental) bool {
		return rt.Customer != nil && rt.Customer.ID == customerID
	}))
}

func (s *Server) listRentalsByEquipment(w http.ResponseWriter, r *http.Request) {
	equipmentID := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.filterRentals(func(rt *domain.Rental) bool {
		return rt.Equipment != nil && rt.Equipment.ID == equipmentID
	}))
}

func (s *Server) filterRentals(keep func(*domain.Rental) bool) []domain.Rental {
	out := make([]domain.Rental, 0, len(s.rentals))
	for _, rt := range s.rentals {
		if keep(rt) {
			out = append(out, *rt)
		}
	}
	return out
}

func (s *Server) getRental(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rt, ok := s.rentals[pathID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "rental not found")
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

func (s *Server) getRentalWithDetails(w http.ResponseWriter, r *http.Request) {
	// Customer and equipment are stored inline, so details is the plain get.
	s.getRental(w, r)
}

func (s *Server) createRental(w http.ResponseWriter, r *http.Request) {
	var req domain.RentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed rental request")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RentalCreates++

	customer, ok := s.customers[req.CustomerID]
	if !ok {
		writeError(w, http.StatusNotFound, "customer not found")
		return
	}
	equipment, ok := s.equipment[req.EquipmentID]
	if !ok {
		writeError(w, http.StatusNotFound, "equipment not found")
		return
	}
	days, err := rentalDays(req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rental period")
		return
	}
	if req.Quantity < 1 {
		writeError(w, http.StatusBadRequest, "quantity must be at least 1")
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	rt := &domain.Rental{
		ID:          s.allocID(),
		Customer:    customer,
		Equipment:   equipment,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Quantity:    req.Quantity,
		DailyRate:   equipment.DailyPrice,
		TotalAmount: equipment.DailyPrice * float64(days) * float64(req.Quantity),
		Status:      domain.RentalStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
		Notes:       req.Notes,
	}
	s.rentals[rt.ID] = rt
	writeJSON(w, http.StatusCreated, rt)
}

func (s *Server) updateRental(w http.ResponseWriter, r *http.Request) {
	var in domain.Rental
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "malformed rental")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := pathID(r)
	rt, ok := s.rentals[id]
	if !ok {
		writeError(w, http.StatusNotFound, "rental not found")
		return
	}
	rt.Notes = in.Notes
	rt.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, rt)
}

func (s *Server) updateRentalStatus(w http.ResponseWriter, r *http.Request) {
	status := domain.RentalStatus(r.URL.Query().Get("status"))
	s.mu.Lock()
	defer s.mu.Unlock()
	rt, ok := s.rentals[pathID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "rental not found")
		return
	}

	allowed := false
	for _, next := range transitions[rt.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		writeError(w, http.StatusConflict, "illegal status transition from %s to %s", rt.Status, status)
		return
	}

	rt.Status = status
	rt.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, rt)
}

func (s *Server) deleteRental(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := pathID(r)
	if _, ok := s.rentals[id]; !ok {
		writeError(w, http.StatusNotFound, "rental not found")
		return
	}
	delete(s.rentals, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) checkRentalAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	quantity, _ := strconv.Atoi(query.Get("quantity"))
	s.mu.Lock()
	defer s.mu.Unlock()
	free, err := s.freeQuantity(pathID(r), query.Get("startDate"), query.Get("endDate"))
	if err != nil {
		writeError(w, http.StatusNotFound, "%s", err)
		return
	}
	writeJSON(w, http.StatusOK, free >= quantity)
}

func (s *Server) availableQuantityForPeriod(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	s.mu.Lock()
	defer s.mu.Unlock()
	free, err := s.freeQuantity(pathID(r), query.Get("startDate"), query.Get("endDate"))
	if err != nil {
		writeError(w, http.StatusNotFound, "%s", err)
		return
	}
	writeJSON(w, http.StatusOK, free)
}

// freeQuantity is the oracle: total stock minus units held by rentals
// overlapping the period.
func (s *Server) freeQuantity(equipmentID int64, startDate, endDate string) (int, error) {
	e, ok := s.equipment[equipmentID]
	if !ok {
		return 0, fmt.Errorf("equipment not found")
	}
	free := e.TotalQuantity
	for _, rt := range s.rentals {
		if rt.Equipment == nil || rt.Equipment.ID != equipmentID || !holdsQuantity(rt.Status) {
			continue
		}
		if datesOverlap(rt.StartDate, rt.EndDate, startDate, endDate) {
			free -= rt.Quantity
		}
	}
	if free < 0 {
		free = 0
	}
	return free, nil
}

func (s *Server) calculateCost(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	quantity, _ := strconv.Atoi(query.Get("quantity"))
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.equipment[pathID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "equipment not found")
		return
	}
	days, err := rentalDays(query.Get("startDate"), query.Get("endDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rental period")
		return
	}
	writeJSON(w, http.StatusOK, e.DailyPrice*float64(days)*float64(quantity))
}
