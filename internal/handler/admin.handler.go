package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dashboard-service/internal/session"
	"dashboard-service/internal/upstream"
)

// AdminHandler serves the admin pages: user management with KYC actions, task
// templates, packages, payments and the referral placement tree.
type AdminHandler struct {
	api      *upstream.Client
	sessions session.Repository
	render   *Renderer
	logger   *zap.Logger
}

func NewAdminHandler(api *upstream.Client, sessions session.Repository, render *Renderer, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{api: api, sessions: sessions, render: render, logger: logger}
}

func (h *AdminHandler) token(r *http.Request) string {
	sid := session.FromContext(r.Context())
	token, err := h.sessions.Token(r.Context(), sid, session.AdminTokenKey)
	if err != nil {
		h.logger.Error("session read failed", zap.Error(err))
	}
	return token
}

func (h *AdminHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, "admin_home", Page{Chrome: h.render.Chrome(r.Context(), "Admin", "admin")})
}

type adminUsersPage struct {
	Page
	Users          []upstream.User
	KycAutoApprove bool
}

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	p := adminUsersPage{Page: Page{Chrome: h.render.Chrome(r.Context(), "All Users", "admin")}}

	users, autoApprove, err := h.api.AdminUsers(r.Context(), h.token(r))
	if err != nil {
		p.Error = upstream.ErrorMessage(err, "Failed to load users")
	} else {
		p.Users = users
		p.KycAutoApprove = autoApprove
	}
	h.render.Render(w, "admin_users", p)
}

func (h *AdminHandler) ApproveKYC(w http.ResponseWriter, r *http.Request) {
	userID := r.FormValue("userId")
	if userID != "" {
		if err := h.api.ApproveKYC(r.Context(), h.token(r), userID); err != nil {
			h.logger.Warn("approve kyc failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	http.Redirect(w, r, "/admin/all-users", http.StatusFound)
}

func (h *AdminHandler) ApproveAllKYC(w http.ResponseWriter, r *http.Request) {
	if err := h.api.ApproveAllKYC(r.Context(), h.token(r)); err != nil {
		h.logger.Warn("approve all kyc failed", zap.Error(err))
	}
	http.Redirect(w, r, "/admin/all-users", http.StatusFound)
}

func (h *AdminHandler) SetKYCAutoApprove(w http.ResponseWriter, r *http.Request) {
	enable := r.FormValue("enable") == "true"
	if err := h.api.SetKYCAutoApprove(r.Context(), h.token(r), enable); err != nil {
		h.logger.Warn("toggle kyc auto-approve failed", zap.Error(err))
	}
	http.Redirect(w, r, "/admin/all-users", http.StatusFound)
}

type adminTasksPage struct {
	Page
	Tasks      []upstream.AdminTask
	Pagination *upstream.Pagination
	PrevPage   int
	NextPage   int
}

const adminTasksPageSize = 10

func (h *AdminHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	p := adminTasksPage{Page: Page{Chrome: h.render.Chrome(r.Context(), "Manage Tasks", "admin")}}
	p.Error = r.URL.Query().Get("error")
	p.Message = r.URL.Query().Get("message")

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = adminTasksPageSize
	}

	tasks, pagination, err := h.api.AdminTasks(r.Context(), h.token(r), page, limit)
	if err != nil {
		p.Error = upstream.ErrorMessage(err, "Failed to load tasks")
	} else {
		p.Tasks = tasks
		p.Pagination = pagination
		if pagination != nil {
			p.PrevPage = pagination.Page - 1
			p.NextPage = pagination.Page + 1
		}
	}
	h.render.Render(w, "admin_tasks", p)
}

func tasksRedirect(w http.ResponseWriter, r *http.Request, key, value string) {
	http.Redirect(w, r, "/admin/manage-task?"+key+"="+url.QueryEscape(value), http.StatusFound)
}

func (h *AdminHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	task := upstream.TaskInput{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Link:        strings.TrimSpace(r.FormValue("link")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
	if task.Name == "" || task.Link == "" {
		tasksRedirect(w, r, "error", "Task name and link are required")
		return
	}
	if err := h.api.CreateTask(r.Context(), h.token(r), task); err != nil {
		tasksRedirect(w, r, "error", upstream.ErrorMessage(err, "Failed to create task"))
		return
	}
	tasksRedirect(w, r, "message", "Task created")
}

func (h *AdminHandler) CreateTasksBulk(w http.ResponseWriter, r *http.Request) {
	tasks := ParseBulkTasks(r.FormValue("tasks"))
	if len(tasks) == 0 {
		tasksRedirect(w, r, "error", "No valid tasks found. Use: name, link, optional description")
		return
	}
	if err := h.api.CreateTasks(r.Context(), h.token(r), tasks); err != nil {
		tasksRedirect(w, r, "error", upstream.ErrorMessage(err, "Failed to create tasks"))
		return
	}
	tasksRedirect(w, r, "message", strconv.Itoa(len(tasks))+" tasks created")
}

func (h *AdminHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if id := r.FormValue("id"); id != "" {
		if err := h.api.DeleteTask(r.Context(), h.token(r), id); err != nil {
			h.logger.Warn("delete task failed", zap.String("task_id", id), zap.Error(err))
		}
	}
	http.Redirect(w, r, "/admin/manage-task", http.StatusFound)
}

func (h *AdminHandler) DeleteSelectedTasks(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err == nil {
		if ids := r.PostForm["ids"]; len(ids) > 0 {
			if err := h.api.DeleteSelectedTasks(r.Context(), h.token(r), ids); err != nil {
				h.logger.Warn("delete selected tasks failed", zap.Int("count", len(ids)), zap.Error(err))
			}
		}
	}
	http.Redirect(w, r, "/admin/manage-task", http.StatusFound)
}

func (h *AdminHandler) DeleteAllTasks(w http.ResponseWriter, r *http.Request) {
	if err := h.api.DeleteAllTasks(r.Context(), h.token(r)); err != nil {
		h.logger.Warn("delete all tasks failed", zap.Error(err))
	}
	http.Redirect(w, r, "/admin/manage-task", http.StatusFound)
}

type adminPackagesPage struct {
	Page
	Packages []upstream.Package
}

func (h *AdminHandler) Packages(w http.ResponseWriter, r *http.Request) {
	p := adminPackagesPage{Page: Page{Chrome: h.render.Chrome(r.Context(), "Manage Packages", "admin")}}

	pkgs, err := h.api.AdminPackages(r.Context(), h.token(r))
	if err != nil {
		p.Error = upstream.ErrorMessage(err, "Failed to load packages")
	} else {
		p.Packages = pkgs
	}
	h.render.Render(w, "admin_packages", p)
}

func (h *AdminHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	tasksPerDay, _ := strconv.Atoi(r.FormValue("tasksPerDay"))
	taskRate, _ := strconv.ParseFloat(r.FormValue("taskRate"), 64)

	var features []string
	for _, f := range strings.Split(r.FormValue("features"), "\n") {
		if f = strings.TrimSpace(f); f != "" {
			features = append(features, f)
		}
	}

	pkg := upstream.PackageInput{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Price:       price,
		TasksPerDay: tasksPerDay,
		TaskRate:    taskRate,
		Features:    features,
		BV:          strings.TrimSpace(r.FormValue("bv")),
	}
	if err := h.api.CreatePackage(r.Context(), h.token(r), pkg); err != nil {
		h.logger.Warn("create package failed", zap.String("name", pkg.Name), zap.Error(err))
	}
	http.Redirect(w, r, "/admin/manage-packages", http.StatusFound)
}

func (h *AdminHandler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	if id := r.FormValue("id"); id != "" {
		if err := h.api.DeletePackage(r.Context(), h.token(r), id); err != nil {
			h.logger.Warn("delete package failed", zap.String("package_id", id), zap.Error(err))
		}
	}
	http.Redirect(w, r, "/admin/manage-packages", http.StatusFound)
}

type adminPaymentsPage struct {
	Page
	Payments     []upstream.Payment
	StatusFilter string
	Search       string
}

// Payments applies status filter and search to the already-fetched list; the
// API has no server-side payment search.
func (h *AdminHandler) Payments(w http.ResponseWriter, r *http.Request) {
	p := adminPaymentsPage{
		Page:         Page{Chrome: h.render.Chrome(r.Context(), "Payments", "admin")},
		StatusFilter: r.URL.Query().Get("status"),
		Search:       strings.TrimSpace(r.URL.Query().Get("q")),
	}
	if p.StatusFilter == "" {
		p.StatusFilter = "ALL"
	}

	payments, err := h.api.AdminPayments(r.Context(), h.token(r))
	if err != nil {
		p.Error = upstream.ErrorMessage(err, "Failed to load payments")
		h.render.Render(w, "admin_payments", p)
		return
	}

	p.Payments = filterPayments(payments, p.StatusFilter, p.Search)
	h.render.Render(w, "admin_payments", p)
}

func filterPayments(payments []upstream.Payment, status, search string) []upstream.Payment {
	needle := strings.ToLower(search)
	var out []upstream.Payment
	for _, pay := range payments {
		if status != "ALL" && pay.Status != status {
			continue
		}
		if needle != "" && !paymentMatches(pay, needle) {
			continue
		}
		out = append(out, pay)
	}
	return out
}

func paymentMatches(p upstream.Payment, needle string) bool {
	for _, field := range []string{p.User.Name, p.User.Email, p.User.Phone, p.Package.Name, p.OrderID, p.PaymentID} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// treeView reshapes the API's left/right child arrays into a single ordered
// child list for the nested-list template.
type treeView struct {
	Name       string
	Email      string
	Status     string
	ReferredOn string
	Children   []treeView
}

func toTreeView(n upstream.TreeNode) treeView {
	v := treeView{Name: n.Name, Email: n.Email, Status: n.Status, ReferredOn: n.ReferredOn}
	for _, c := range n.Left {
		v.Children = append(v.Children, toTreeView(c))
	}
	for _, c := range n.Right {
		v.Children = append(v.Children, toTreeView(c))
	}
	return v
}

type adminTreePage struct {
	Page
	Root *treeView
}

// Tree renders the full referral placement forest under a synthetic System
// root. Subtrees are fetched concurrently, one call per root user.
func (h *AdminHandler) Tree(w http.ResponseWriter, r *http.Request) {
	p := adminTreePage{Page: Page{Chrome: h.render.Chrome(r.Context(), "Referral Tree", "admin")}}
	token := h.token(r)

	if userID := chi.URLParam(r, "id"); userID != "" {
		node, err := h.api.UserTree(r.Context(), token, userID)
		if err != nil {
			p.Error = upstream.ErrorMessage(err, "Failed to load user tree")
		} else {
			v := toTreeView(*node)
			p.Root = &v
		}
		h.render.Render(w, "admin_tree", p)
		return
	}

	roots, err := h.api.RootUsers(r.Context(), token)
	if err != nil {
		p.Error = upstream.ErrorMessage(err, "Failed to load root users")
		h.render.Render(w, "admin_tree", p)
		return
	}

	children := make([]treeView, len(roots))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(8)
	var mu sync.Mutex
	for i, root := range roots {
		i, root := i, root
		g.Go(func() error {
			node, err := h.api.UserTree(ctx, token, root.ID)
			if err != nil {
				return err
			}
			mu.Lock()
			children[i] = toTreeView(*node)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		p.Error = upstream.ErrorMessage(err, "Failed to load referral tree")
		h.render.Render(w, "admin_tree", p)
		return
	}

	p.Root = &treeView{Name: "System", Status: "active", Children: children}
	h.render.Render(w, "admin_tree", p)
}

func (h *AdminHandler) Profile(w http.ResponseWriter, r *http.Request) {
	p := profilePage{Page: Page{Chrome: h.render.Chrome(r.Context(), "Admin Profile", "admin")}}

	data, err := h.api.Profile(r.Context(), h.token(r))
	if err != nil {
		p.Error = upstream.ErrorMessage(err, "Failed to load profile")
	} else {
		p.Data = data
	}
	h.render.Render(w, "profile", p)
}
