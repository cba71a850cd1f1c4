package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	reportingmapper "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/adapters/http/mapper"
	reportingdomain "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/domain"
)

// ContentTypeXLSX is the media type of the workbook.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	sheetSummary  = "Tổng quan"
	sheetLowStock = "Sắp hết hàng"
	sheetOrders   = "Đơn hàng gần đây"
	sheetUsers    = "Người dùng mới"
)

var (
	lowStockHeaders = []interface{}{"ID", "Sản phẩm", "Danh mục", "Thương hiệu", "Tồn kho", "Giá"}
	orderHeaders    = []interface{}{"Mã đơn", "Khách hàng", "Tổng tiền", "Trạng thái", "Ngày đặt"}
	userHeaders     = []interface{}{"ID", "Tên đăng nhập", "Họ tên", "Email", "Vai trò", "Ngày đăng ký"}
)

// FileName is the suggested attachment name for a dashboard export.
func FileName(d reportingdomain.Dashboard) string {
	return fmt.Sprintf("dashboard_%s.xlsx", d.AsOf.Format("2006-01-02"))
}

// WriteXLSX renders the dashboard as a four-sheet workbook.
func WriteXLSX(w io.Writer, d reportingdomain.Dashboard, f *reportingmapper.Formatter) error {
	view := f.FromDomainDashboard(d)

	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName("Sheet1", sheetSummary); err != nil {
		return err
	}
	bold, err := book.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	summaryRows := [][]interface{}{
		{"Chỉ số", "Giá trị"},
		{"Tổng sản phẩm", view.Summary.TotalProducts},
		{"Tổng đơn hàng", view.Summary.TotalOrders},
		{"Tổng người dùng", view.Summary.TotalUsers},
		{"Đơn chờ xác nhận", view.Summary.PendingOrders},
		{"Đơn hôm nay", view.Summary.TodayOrders},
		{"Tổng doanh thu", view.Summary.TotalRevenueDisplay},
		{"Doanh thu tháng", view.Summary.MonthlyRevenueDisplay},
		{"Cập nhật lúc", view.AsOfDisplay},
	}
	if err := writeRows(book, sheetSummary, summaryRows); err != nil {
		return err
	}

	lowStock := [][]interface{}{lowStockHeaders}
	for _, p := range view.Summary.LowStockProducts {
		lowStock = append(lowStock, []interface{}{p.ID, p.Name, p.Category, p.Brand, p.Quantity, p.PriceDisplay})
	}
	orders := [][]interface{}{orderHeaders}
	for _, o := range view.RecentOrders {
		orders = append(orders, []interface{}{o.OrderNumber, o.Customer, o.TotalAmountDisplay, o.StatusLabel, o.CreatedAtDisplay})
	}
	users := [][]interface{}{userHeaders}
	for _, u := range view.RecentUsers {
		users = append(users, []interface{}{u.ID, u.Username, u.FullName, u.Email, u.RoleLabel, u.CreatedAtDisplay})
	}
	for _, sheet := range []struct {
		name string
		rows [][]interface{}
	}{
		{sheetLowStock, lowStock},
		{sheetOrders, orders},
		{sheetUsers, users},
	} {
		if _, err := book.NewSheet(sheet.name); err != nil {
			return err
		}
		if err := writeRows(book, sheet.name, sheet.rows); err != nil {
			return err
		}
	}

	for _, name := range []string{sheetSummary, sheetLowStock, sheetOrders, sheetUsers} {
		if err := book.SetRowStyle(name, 1, 1, bold); err != nil {
			return err
		}
		if err := book.SetColWidth(name, "A", "F", 22); err != nil {
			return err
		}
	}

	_, err = book.WriteTo(w)
	return err
}

func writeRows(book *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := book.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
