package tools

import (
	"fmt"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportToExcel 将结构体切片按 excel 标签写入指定工作表
func ExportToExcel(f *excelize.File, sheet string, data interface{}) error {
	v := reflect.ValueOf(data)

	if v.Kind() != reflect.Slice {
		return fmt.Errorf("data %v不是切片 !", data)
	}
	if v.Len() == 0 {
		return nil
	}
	elemType := v.Index(0).Type()
	if elemType.Kind() != reflect.Struct {
		return fmt.Errorf("data %v不是结构体切片 !", data)
	}
	if sheet == "" {
		sheet = "Sheet1"
	}
	_, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	cols := []int{}
	headers := []string{}

	for i := 0; i < elemType.NumField(); i++ {
		field := elemType.Field(i)
		tag := field.Tag.Get("excel")
		if tag == "-" {
			continue
		}
		if tag == "" {
			tag = field.Name
		}
		cols = append(cols, i)
		headers = append(headers, tag)
		cell, err := excelize.CoordinatesToCellName(len(headers), 1)
		if err != nil {
			return err
		}
		err = f.SetCellValue(sheet, cell, tag)
		if err != nil {
			return err
		}
	}

	for row := 0; row < v.Len(); row++ {
		elem := v.Index(row)
		for colIndex, fieldIndex := range cols {
			cell, err := excelize.CoordinatesToCellName(colIndex+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, elem.Field(fieldIndex).Interface()); err != nil {
				return err
			}
		}
	}
	return nil
}

// SendExcel 直接把工作簿写入响应体
func SendExcel(c *gin.Context, f *excelize.File, displayName string) error {
	c.Header("Content-Type", ExcelContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, displayName))
	_, err := f.WriteTo(c.Writer)
	return err
}
